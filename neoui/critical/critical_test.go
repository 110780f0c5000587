package critical

import (
	"sync"
	"testing"
)

func TestDoSerializes(t *testing.T) {
	const workers, per = 8, 1000
	var n int
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < per; j++ {
				Do(func() { n++ })
			}
		}()
	}
	wg.Wait()
	if n != workers*per {
		t.Fatalf("n = %d, want %d", n, workers*per)
	}
}
