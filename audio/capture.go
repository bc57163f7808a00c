package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ChunkInterval is the capture cadence: encoded data is collected from the
// device every 100ms.
const ChunkInterval = 100 * time.Millisecond

// MIMEType tags finished clips.
const MIMEType = "audio/webm"

// Clip is a finished recording: all buffered chunks concatenated in
// arrival order.
type Clip struct {
	Data []byte
	MIME string
}

// Controller owns the device handle and the chunk buffer for one
// recording. Finish and Abort both guarantee that the device is released;
// a leaked handle would block the microphone for every other application.
type Controller struct {
	opener Opener

	mu        sync.Mutex
	device    Device
	chunks    [][]byte
	done      chan struct{}
	collectWG sync.WaitGroup
	clip      *Clip // result of the last Finish; makes Finish idempotent
}

// NewController wraps a device opener.
func NewController(opener Opener) *Controller {
	return &Controller{opener: opener}
}

// Acquire requests exclusive access to an input device with the default
// constraints. Any failure is reported as ErrDeviceUnavailable and leaves
// the controller with no partially acquired resource.
func (c *Controller) Acquire(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		return nil // already held
	}

	dev, err := c.opener.Open(ctx, DefaultConstraints())
	if err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	c.device = dev
	c.chunks = nil
	c.clip = nil
	return nil
}

// BeginEncoding starts buffering chunks from the acquired device in
// arrival order.
func (c *Controller) BeginEncoding() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return errors.New("no device acquired")
	}
	if c.done != nil {
		return nil // already encoding
	}

	done := make(chan struct{})
	c.done = done
	c.collectWG.Add(1)
	go c.collect(c.device, done)
	return nil
}

func (c *Controller) collect(dev Device, done chan struct{}) {
	defer c.collectWG.Done()
	for {
		select {
		case chunk, ok := <-dev.Chunks():
			if !ok {
				return
			}
			if len(chunk) == 0 {
				continue
			}
			c.mu.Lock()
			c.chunks = append(c.chunks, chunk)
			c.mu.Unlock()
		case <-done:
			return
		}
	}
}

// Finish stops encoding, concatenates the buffered chunks into a clip,
// releases the device, and clears the buffer. Idempotent: a second call is
// a no-op returning the previously produced clip (or nil if there was
// none). The device is released even when concatenation has nothing to do.
func (c *Controller) Finish() (*Clip, error) {
	c.mu.Lock()
	if c.device == nil {
		clip := c.clip
		c.mu.Unlock()
		return clip, nil
	}
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	dev := c.device
	c.device = nil
	c.mu.Unlock()

	// Let the collector drain before reading the buffer.
	c.collectWG.Wait()

	c.mu.Lock()
	var buf bytes.Buffer
	for _, chunk := range c.chunks {
		buf.Write(chunk)
	}
	c.chunks = nil
	clip := &Clip{Data: buf.Bytes(), MIME: MIMEType}
	c.clip = clip
	c.mu.Unlock()

	if err := dev.Release(); err != nil {
		return clip, fmt.Errorf("failed to release device: %w", err)
	}
	return clip, nil
}

// Abort stops encoding and releases the device without producing a clip.
// Safe to call in any phase, including before Acquire ever succeeded.
func (c *Controller) Abort() {
	c.mu.Lock()
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	dev := c.device
	c.device = nil
	c.clip = nil
	c.mu.Unlock()

	c.collectWG.Wait()

	c.mu.Lock()
	c.chunks = nil
	c.mu.Unlock()

	if dev != nil {
		_ = dev.Release()
	}
}
