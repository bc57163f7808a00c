package audio

import (
	"context"
	"sync"
	"time"
)

// Phase is the recorder lifecycle phase.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRecording  Phase = "recording"
	PhaseProcessing Phase = "processing"
)

// State is a point-in-time snapshot of the recorder.
type State struct {
	Phase          Phase
	ElapsedSeconds int
	LastError      string
}

// micErrorNotice is what the UI shows when the device cannot be acquired.
const micErrorNotice = "Failed to access microphone. Please check permissions."

// Recorder drives the capture controller through
// idle -> recording -> processing -> idle (Stop) or
// idle -> recording -> idle (Cancel). Calls from an invalid phase are
// no-ops. The recorder owns its elapsed-time ticker and stops it on every
// exit transition.
type Recorder struct {
	controller *Controller

	mu       sync.Mutex
	phase    Phase
	elapsed  int
	lastErr  string
	stopTick chan struct{}
}

// NewRecorder wraps a capture controller.
func NewRecorder(controller *Controller) *Recorder {
	return &Recorder{controller: controller, phase: PhaseIdle}
}

// Start acquires the device and begins encoding. Valid only from idle; a
// second Start while recording is a no-op and acquires nothing. On device
// failure the recorder stays idle with LastError set; clear it with
// ClearError before retrying.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.phase != PhaseIdle {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	if err := r.controller.Acquire(ctx); err != nil {
		r.mu.Lock()
		r.lastErr = micErrorNotice
		r.mu.Unlock()
		return err
	}
	if err := r.controller.BeginEncoding(); err != nil {
		// Encoding never started; the handle must not survive.
		r.controller.Abort()
		r.mu.Lock()
		r.lastErr = err.Error()
		r.mu.Unlock()
		return err
	}

	stop := make(chan struct{})
	r.mu.Lock()
	r.phase = PhaseRecording
	r.elapsed = 0
	r.stopTick = stop
	r.mu.Unlock()

	go r.tick(stop)
	return nil
}

func (r *Recorder) tick(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			if r.phase == PhaseRecording {
				r.elapsed++
			}
			r.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// Stop finishes the recording and yields the clip. Valid only from
// recording; otherwise a no-op returning nil. The device is released even
// when finishing fails.
func (r *Recorder) Stop() (*Clip, error) {
	r.mu.Lock()
	if r.phase != PhaseRecording {
		r.mu.Unlock()
		return nil, nil
	}
	r.phase = PhaseProcessing
	r.haltTicker()
	r.mu.Unlock()

	clip, err := r.controller.Finish()

	r.mu.Lock()
	r.phase = PhaseIdle
	r.elapsed = 0
	if err != nil {
		r.lastErr = err.Error()
	}
	r.mu.Unlock()
	return clip, err
}

// Cancel discards the recording without producing a clip. Valid only from
// recording; otherwise a no-op.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	if r.phase != PhaseRecording {
		r.mu.Unlock()
		return
	}
	r.phase = PhaseIdle
	r.elapsed = 0
	r.haltTicker()
	r.mu.Unlock()

	r.controller.Abort()
}

// haltTicker stops the elapsed ticker. Caller holds the lock.
func (r *Recorder) haltTicker() {
	if r.stopTick != nil {
		close(r.stopTick)
		r.stopTick = nil
	}
}

// State returns a snapshot of the current phase, elapsed seconds, and the
// last surfaced error.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{Phase: r.phase, ElapsedSeconds: r.elapsed, LastError: r.lastErr}
}

// ClearError resets LastError. The UI calls this after surfacing the
// notice, before the next Start attempt.
func (r *Recorder) ClearError() {
	r.mu.Lock()
	r.lastErr = ""
	r.mu.Unlock()
}
