package socket

import "encoding/binary"

// Socket is itself a Stream: Read pulls from the input Buffer, Write
// appends to the output Buffer and wakes the sender, Flush waits for
// the output Buffer to drain. Socket has no notion of random access,
// so Seek is unsupported and returns the current read position.

func (s *Socket) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.Read(p)
}

func (s *Socket) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.out.Write(p)
	if err == nil {
		s.outReady.Broadcast()
	}
	return n, err
}

// Seek is not supported on a live connection; it reports the current
// read position and performs no movement.
func (s *Socket) Seek(offset int64) int64 {
	return s.in.Pos()
}

// Flush blocks until every byte handed to Write has been written to
// the underlying connection.
func (s *Socket) Flush() error {
	s.mu.Lock()
	for s.out.Size() != 0 {
		s.allSent.Wait()
	}
	s.mu.Unlock()
	return nil
}

func (s *Socket) Pos() int64  { return s.in.Pos() }
func (s *Socket) Size() int64 { return s.in.Size() }

func (s *Socket) ByteOrder() binary.ByteOrder { return s.in.ByteOrder() }

func (s *Socket) SetByteOrder(order binary.ByteOrder) {
	s.in.SetByteOrder(order)
	s.out.SetByteOrder(order)
}
