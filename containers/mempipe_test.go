// File: containers/mempipe_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package containers

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/momentics/hioload-kit/api"
)

func TestMemPipeRoundTrip(t *testing.T) {
	p := NewMemPipe(16)
	msg := []byte("hello")
	n, err := p.Send(msg, 0)
	if err != nil || n != len(msg) {
		t.Fatalf("Send = %d,%v", n, err)
	}
	out := make([]byte, 16)
	n, err = p.Recv(out, 0)
	if err != nil || n != len(msg) {
		t.Fatalf("Recv = %d,%v", n, err)
	}
	if !bytes.Equal(out[:n], msg) {
		t.Errorf("Recv data = %q, want %q", out[:n], msg)
	}
}

func TestMemPipeShortWrite(t *testing.T) {
	p := NewMemPipe(4)
	n, err := p.Send([]byte("abcdef"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("short Send = %d, want 4", n)
	}
	out := make([]byte, 8)
	n, _ = p.Recv(out, 0)
	if string(out[:n]) != "abcd" {
		t.Errorf("Recv = %q, want abcd", out[:n])
	}
}

func TestMemPipeRecvTimeout(t *testing.T) {
	p := NewMemPipe(4)
	out := make([]byte, 4)
	_, err := p.Recv(out, 20*time.Millisecond)
	if !errors.Is(err, api.ErrOperationTimeout) {
		t.Errorf("Recv on empty pipe = %v, want ErrOperationTimeout", err)
	}
}

func TestMemPipeSendBlocksWhenFull(t *testing.T) {
	p := NewMemPipe(2)
	if _, err := p.Send([]byte("xy"), 0); err != nil {
		t.Fatal(err)
	}
	_, err := p.Send([]byte("z"), 20*time.Millisecond)
	if !errors.Is(err, api.ErrOperationTimeout) {
		t.Errorf("Send on full pipe = %v, want ErrOperationTimeout", err)
	}
	out := make([]byte, 1)
	if _, err := p.Recv(out, 0); err != nil {
		t.Fatal(err)
	}
	if n, err := p.Send([]byte("z"), time.Second); err != nil || n != 1 {
		t.Errorf("Send after space freed = %d,%v", n, err)
	}
}

func TestMemPipeCloseDrainsThenFails(t *testing.T) {
	p := NewMemPipe(8)
	_, _ = p.Send([]byte("ab"), 0)
	p.Close()
	if _, err := p.Send([]byte("c"), 0); !errors.Is(err, api.ErrClosed) {
		t.Errorf("Send after Close = %v, want ErrClosed", err)
	}
	out := make([]byte, 8)
	n, err := p.Recv(out, 0)
	if err != nil || n != 2 {
		t.Fatalf("Recv of buffered bytes after Close = %d,%v", n, err)
	}
	if _, err := p.Recv(out, 0); !errors.Is(err, api.ErrClosed) {
		t.Errorf("Recv on drained closed pipe = %v, want ErrClosed", err)
	}
}

func TestMemPipeStreaming(t *testing.T) {
	p := NewMemPipe(8)
	const total = 4096
	go func() {
		buf := make([]byte, 3)
		for sent := 0; sent < total; {
			chunk := buf
			if total-sent < len(chunk) {
				chunk = chunk[:total-sent]
			}
			n, err := p.Send(chunk, 0)
			if err != nil {
				return
			}
			sent += n
		}
	}()
	got := 0
	out := make([]byte, 5)
	for got < total {
		n, err := p.Recv(out, 5*time.Second)
		if err != nil {
			t.Fatalf("Recv error at %d: %v", got, err)
		}
		got += n
	}
	if got != total {
		t.Errorf("received %d bytes, want %d", got, total)
	}
}
