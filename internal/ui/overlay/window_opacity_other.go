//go:build !windows

package overlay

import "fyne.io/fyne/v2"

// applyNativeOpacity is windows-only; elsewhere the backdrop alpha does
// the work.
func applyNativeOpacity(fyne.Window, uint8) {}
