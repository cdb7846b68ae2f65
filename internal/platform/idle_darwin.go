package platform

import (
	"time"

	"zenspace/internal/core/orchestrator"
)

type idleProvider struct{}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	return 0, orchestrator.ErrIdleUnsupported
}
