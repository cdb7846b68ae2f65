// Package capture owns the webcam read loop: it pulls frames, hands them
// to the detector sidecar, classifies the landmarks and drives the
// orchestrator once per frame.
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"zenspace/internal/core/orchestrator"
	"zenspace/internal/core/signal"
	"zenspace/internal/detector"
	"zenspace/internal/log"
)

// Config controls the camera source.
type Config struct {
	DeviceID       int
	FrameWidth     int
	FrameHeight    int
	TargetFPS      float64
	FlipHorizontal bool
}

// DefaultConfig matches a common laptop webcam.
func DefaultConfig() Config {
	return Config{
		DeviceID:       0,
		FrameWidth:     640,
		FrameHeight:    480,
		TargetFPS:      30,
		FlipHorizontal: true,
	}
}

// consecutive read failures tolerated before the loop gives up on the
// device.
const maxReadFailures = 90

// Run opens the camera and processes frames until ctx is cancelled or the
// device becomes unusable. Detector errors are logged and the frame
// skipped; the orchestrator only ever sees classified snapshots.
func Run(ctx context.Context, config Config, det detector.Detector, orch *orchestrator.Orchestrator) error {
	webcam, err := gocv.OpenVideoCapture(config.DeviceID)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", config.DeviceID, err)
	}
	defer webcam.Close()

	if config.FrameWidth > 0 {
		webcam.Set(gocv.VideoCaptureFrameWidth, float64(config.FrameWidth))
	}
	if config.FrameHeight > 0 {
		webcam.Set(gocv.VideoCaptureFrameHeight, float64(config.FrameHeight))
	}
	if config.TargetFPS > 0 {
		webcam.Set(gocv.VideoCaptureFPS, config.TargetFPS)
	}
	log.Info("camera opened", "device", config.DeviceID,
		"width", webcam.Get(gocv.VideoCaptureFrameWidth),
		"height", webcam.Get(gocv.VideoCaptureFrameHeight))

	frame := gocv.NewMat()
	defer frame.Close()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if ok := webcam.Read(&frame); !ok || frame.Empty() {
			failures++
			if failures >= maxReadFailures {
				return errors.New("camera stopped delivering frames")
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}
		failures = 0

		if config.FlipHorizontal {
			gocv.Flip(frame, &frame, 1)
		}

		jpeg, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
		if err != nil {
			log.Warn("frame encode failed", "error", err)
			continue
		}

		obs, err := det.Detect(ctx, jpeg.GetBytes())
		jpeg.Close()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("detector error, skipping frame", "error", err)
			continue
		}

		orch.ProcessFrame(signal.Classify(obs), time.Now())
	}
}
