// Package audio owns voice capture: the device capability surface, the
// capture controller that buffers encoded chunks, and the recorder state
// machine driving it. The core obligation of this package is that the
// input device is fully released on every exit path.
package audio

import (
	"context"
	"errors"
)

// ErrDeviceUnavailable covers permission denial, a missing input device,
// and a device held by another process. Recoverable: the recorder stays
// idle and the UI surfaces the error.
var ErrDeviceUnavailable = errors.New("audio input device unavailable")

// Constraints are the capture options requested when opening a device.
type Constraints struct {
	EchoCancellation bool
	NoiseSuppression bool
	AutoGainControl  bool
}

// DefaultConstraints enables the full voice-chat processing chain.
func DefaultConstraints() Constraints {
	return Constraints{
		EchoCancellation: true,
		NoiseSuppression: true,
		AutoGainControl:  true,
	}
}

// Device is an exclusively held audio input. Chunks delivers encoded data
// at the capture cadence until Release is called; the channel is closed
// when the device stops producing.
type Device interface {
	Chunks() <-chan []byte
	Release() error
}

// Opener acquires an input device. Implementations must not leave a
// partially acquired device behind on failure.
type Opener interface {
	Open(ctx context.Context, c Constraints) (Device, error)
}
