package audio

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

// CommandOpener launches an external capture process and adapts its stdout
// into the Device contract. Chunks are cut from the process output at the
// capture cadence.
type CommandOpener struct {
	Name string
	Args []string
}

// DefaultCommandOpener records the default input with ffmpeg and streams
// opus-in-webm to stdout. Echo cancellation, noise suppression, and auto
// gain are applied by the audio server at the source, which is where the
// requested constraints land on a desktop system.
func DefaultCommandOpener() *CommandOpener {
	return &CommandOpener{
		Name: "ffmpeg",
		Args: []string{
			"-hide_banner", "-loglevel", "error",
			"-f", "pulse", "-i", "default",
			"-ac", "1",
			"-c:a", "libopus",
			"-f", "webm", "-",
		},
	}
}

// Open starts the capture process. The returned device holds the process
// until Release kills it; a start failure leaves nothing running.
func (o *CommandOpener) Open(ctx context.Context, _ Constraints) (Device, error) {
	cmd := exec.CommandContext(ctx, o.Name, o.Args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	d := &commandDevice{
		cmd:    cmd,
		chunks: make(chan []byte, 64),
		done:   make(chan struct{}),
	}
	go d.pump(stdout)
	return d, nil
}

type commandDevice struct {
	cmd    *exec.Cmd
	chunks chan []byte
	done   chan struct{}

	mu      sync.Mutex
	pending []byte

	releaseOnce sync.Once
	releaseErr  error
}

func (d *commandDevice) Chunks() <-chan []byte { return d.chunks }

// pump reads the process output continuously and flushes whatever has
// accumulated every ChunkInterval.
func (d *commandDevice) pump(stdout io.Reader) {
	defer close(d.chunks)

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		buf := make([]byte, 4096)
		for {
			n, err := stdout.Read(buf)
			if n > 0 {
				d.mu.Lock()
				d.pending = append(d.pending, buf[:n]...)
				d.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(ChunkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if chunk := d.takePending(); chunk != nil {
				select {
				case d.chunks <- chunk:
				case <-d.done:
					return
				}
			}
		case <-readDone:
			if chunk := d.takePending(); chunk != nil {
				select {
				case d.chunks <- chunk:
				case <-d.done:
				}
			}
			return
		case <-d.done:
			return
		}
	}
}

func (d *commandDevice) takePending() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pending) == 0 {
		return nil
	}
	chunk := d.pending
	d.pending = nil
	return chunk
}

// Release kills the capture process and reaps it. Idempotent.
func (d *commandDevice) Release() error {
	d.releaseOnce.Do(func() {
		close(d.done)
		if d.cmd.Process != nil {
			_ = d.cmd.Process.Kill()
		}
		// Wait reaps the process; a kill-induced exit error is expected.
		_ = d.cmd.Wait()
	})
	return d.releaseErr
}
