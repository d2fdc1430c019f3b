// File: containers/sync_dict_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package containers

import (
	"sync"
	"testing"
)

func TestSyncDictBasicOps(t *testing.T) {
	d := NewSyncDict[string, int]()
	d.Set("a", 1)
	d.Set("b", 2)
	if v, ok := d.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d,%v", v, ok)
	}
	if d.Len() != 2 {
		t.Errorf("Len = %d, want 2", d.Len())
	}
	if !d.Delete("a") {
		t.Error("Delete(a) should report true")
	}
	if d.Delete("a") {
		t.Error("second Delete(a) should report false")
	}
	if _, ok := d.Get("a"); ok {
		t.Error("Get after Delete should fail")
	}
}

func TestSyncDictGetOrSet(t *testing.T) {
	d := NewSyncDict[string, int]()
	if v, loaded := d.GetOrSet("k", 10); loaded || v != 10 {
		t.Errorf("first GetOrSet = %d,%v", v, loaded)
	}
	if v, loaded := d.GetOrSet("k", 20); !loaded || v != 10 {
		t.Errorf("second GetOrSet = %d,%v, want 10,true", v, loaded)
	}
}

func TestSyncDictConcurrentAccess(t *testing.T) {
	d := NewSyncDict[int, int]()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := base*500 + i
				d.Set(k, k)
				if v, ok := d.Get(k); !ok || v != k {
					t.Errorf("Get(%d) = %d,%v", k, v, ok)
				}
			}
		}(g)
	}
	wg.Wait()
	if d.Len() != 8*500 {
		t.Errorf("Len = %d, want %d", d.Len(), 8*500)
	}
}
