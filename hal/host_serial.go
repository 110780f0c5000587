//go:build !tinygo

package hal

import (
	"io"
	"sync"
)

// hostSerial reads stdin on a goroutine so Buffered/Read never block the
// scheduler loop.
type hostSerial struct {
	mu  sync.Mutex
	w   io.Writer
	buf []byte
	err error
}

func newHostSerial(r io.Reader, w io.Writer) *hostSerial {
	s := &hostSerial{w: w}
	if r != nil {
		go s.pump(r)
	}
	return s
}

func (s *hostSerial) pump(r io.Reader) {
	var chunk [64]byte
	for {
		n, err := r.Read(chunk[:])
		s.mu.Lock()
		if n > 0 && len(s.buf) < 4096 {
			s.buf = append(s.buf, chunk[:n]...)
		}
		if err != nil {
			s.err = err
		}
		s.mu.Unlock()
		if err != nil {
			return
		}
	}
}

func (s *hostSerial) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

func (s *hostSerial) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, nil
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
