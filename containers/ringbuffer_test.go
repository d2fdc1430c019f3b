// File: containers/ringbuffer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package containers

import (
	"math/rand"
	"testing"
)

func TestRingBufferBasicFIFO(t *testing.T) {
	r := NewRingBuffer[int](4)
	for i := 1; i <= 3; i++ {
		r.Push(i)
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
	for i := 1; i <= 3; i++ {
		v, ok := r.Pop()
		if !ok || v != i {
			t.Errorf("Pop = %d,%v, want %d", v, ok, i)
		}
	}
	if _, ok := r.Pop(); ok {
		t.Error("Pop on empty buffer should fail")
	}
}

func TestRingBufferOverwriteWindow(t *testing.T) {
	const capacity = 8
	const pushes = 20
	r := NewRingBuffer[int](capacity)
	for i := 1; i <= pushes; i++ {
		r.Push(i)
	}
	if r.Len() != capacity {
		t.Errorf("Len = %d, want %d", r.Len(), capacity)
	}
	// After N pushes into capacity C: back is the N-th value,
	// front is the (N-C+1)-th value.
	if back, _ := r.Back(); back != pushes {
		t.Errorf("Back = %d, want %d", back, pushes)
	}
	if front, _ := r.Front(); front != pushes-capacity+1 {
		t.Errorf("Front = %d, want %d", front, pushes-capacity+1)
	}
}

func TestRingBufferOverwriteAdvancesFrontByOne(t *testing.T) {
	r := NewRingBuffer[int](3)
	r.Push(10)
	r.Push(20)
	r.Push(30)
	origFront, _ := r.Front()
	r.Push(40) // overwrites 10
	front, _ := r.Front()
	if front != 20 {
		t.Errorf("Front after overwrite = %d, want element one past original front %d", front, origFront)
	}
	back, _ := r.Back()
	if back != 40 {
		t.Errorf("Back after overwrite = %d, want 40", back)
	}
}

func TestRingBufferAtAndDo(t *testing.T) {
	r := NewRingBuffer[string](4)
	r.Push("a")
	r.Push("b")
	r.Push("c")
	if v, ok := r.At(1); !ok || v != "b" {
		t.Errorf("At(1) = %q,%v, want b", v, ok)
	}
	if _, ok := r.At(3); ok {
		t.Error("At out of range should fail")
	}
	var got []string
	r.Do(func(v string) { got = append(got, v) })
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Do order mismatch at %d: %q != %q", i, got[i], want[i])
		}
	}
}

func TestRingBufferRandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := NewRingBuffer[int](64)
	size := 0
	for i := 0; i < 5000; i++ {
		if rng.Intn(2) == 0 {
			r.Push(rng.Intn(100000))
			if size < 64 {
				size++
			}
		} else {
			if _, ok := r.Pop(); ok {
				size--
			}
		}
		if size != r.Len() {
			t.Fatalf("invariant failed: expected size %d, got %d", size, r.Len())
		}
		if r.Len() < 0 || r.Len() > 64 {
			t.Fatalf("length out of bounds: %d", r.Len())
		}
	}
}

func TestRingVectorResizeKeepsNewest(t *testing.T) {
	v := NewRingVector[int](8)
	for i := 1; i <= 6; i++ {
		v.Push(i)
	}
	v.Resize(3)
	if v.Cap() != 3 || v.Len() != 3 {
		t.Fatalf("after shrink Cap=%d Len=%d, want 3/3", v.Cap(), v.Len())
	}
	for want := 4; want <= 6; want++ {
		got, ok := v.Pop()
		if !ok || got != want {
			t.Errorf("Pop = %d,%v, want %d", got, ok, want)
		}
	}

	v = NewRingVector[int](2)
	v.Push(1)
	v.Push(2)
	v.Resize(5)
	v.Push(3)
	if v.Len() != 3 {
		t.Errorf("after grow Len = %d, want 3", v.Len())
	}
	if front, _ := v.Front(); front != 1 {
		t.Errorf("Front after grow = %d, want 1", front)
	}
}
