// File: containers/mempipe.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// MemPipe is a byte-oriented blocking stream between one writer side and one
// reader side inside the same process. Send blocks only while the pipe is
// completely full; a send larger than the remaining space writes what fits
// and returns the short count.

package containers

import (
	"sync"
	"time"

	"github.com/momentics/hioload-kit/api"
)

// MemPipe is a fixed-capacity circular byte stream.
type MemPipe struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	buf      []byte
	head     int // read position
	size     int
	closed   bool
}

// NewMemPipe allocates a pipe with the given byte capacity (must be > 0).
func NewMemPipe(capacity int) *MemPipe {
	if capacity <= 0 {
		panic("containers: mem pipe capacity must be positive")
	}
	p := &MemPipe{buf: make([]byte, capacity)}
	p.notEmpty = sync.NewCond(&p.mu)
	p.notFull = sync.NewCond(&p.mu)
	return p
}

// waitDeadline blocks on c until signaled or the deadline passes.
// Zero deadline waits without limit. Caller holds p.mu.
func (p *MemPipe) waitDeadline(c *sync.Cond, deadline time.Time) bool {
	if deadline.IsZero() {
		c.Wait()
		return true
	}
	d := time.Until(deadline)
	if d <= 0 {
		return false
	}
	t := time.AfterFunc(d, func() {
		p.mu.Lock()
		c.Broadcast()
		p.mu.Unlock()
	})
	c.Wait()
	t.Stop()
	return true
}

func (p *MemPipe) send(data []byte, deadline time.Time) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if p.closed {
			return 0, api.ErrClosed
		}
		if p.size < len(p.buf) {
			break
		}
		if !p.waitDeadline(p.notFull, deadline) {
			return 0, api.ErrOperationTimeout
		}
	}
	n := len(p.buf) - p.size
	if n > len(data) {
		n = len(data)
	}
	for i := 0; i < n; i++ {
		p.buf[(p.head+p.size+i)%len(p.buf)] = data[i]
	}
	p.size += n
	p.notEmpty.Broadcast()
	return n, nil
}

// Send writes data, blocking while the pipe is full. When data exceeds the
// remaining space the write is short; the returned count may be < len(data).
// Zero timeout blocks without limit.
func (p *MemPipe) Send(data []byte, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		return p.send(data, time.Time{})
	}
	return p.send(data, time.Now().Add(timeout))
}

func (p *MemPipe) recv(out []byte, deadline time.Time) (int, error) {
	if len(out) == 0 {
		return 0, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.size == 0 {
		if p.closed {
			return 0, api.ErrClosed
		}
		if !p.waitDeadline(p.notEmpty, deadline) {
			return 0, api.ErrOperationTimeout
		}
	}
	n := p.size
	if n > len(out) {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		out[i] = p.buf[(p.head+i)%len(p.buf)]
	}
	p.head = (p.head + n) % len(p.buf)
	p.size -= n
	p.notFull.Broadcast()
	return n, nil
}

// Recv reads up to len(out) bytes, blocking while the pipe is empty.
// Zero timeout blocks without limit. After Close, buffered bytes are drained
// before ErrClosed is returned.
func (p *MemPipe) Recv(out []byte, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		return p.recv(out, time.Time{})
	}
	return p.recv(out, time.Now().Add(timeout))
}

// Len returns the number of buffered bytes.
func (p *MemPipe) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Cap returns the pipe capacity in bytes.
func (p *MemPipe) Cap() int { return len(p.buf) }

// Close wakes blocked peers. Buffered bytes remain readable.
func (p *MemPipe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.notEmpty.Broadcast()
	p.notFull.Broadcast()
}
