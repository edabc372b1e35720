package socket

import (
	"context"
	"errors"
	"io"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/tfcore/tf/cmn/cos"
	"github.com/tfcore/tf/thread"
	"github.com/tfcore/tf/xmetrics"
)

const recvChunkSize = 64 * 1024

// startWorkers launches the sender and receiver threads once connected.
func (s *Socket) startWorkers() {
	s.senderTh = thread.New(s.senderLoop)
	s.receiverTh = thread.New(s.receiverLoop)
	s.senderTh.Start()
	s.receiverTh.Start()
}

// senderLoop waits on outReady for either new output bytes or a
// shutdown request, drains whatever is pending, writes it out, and
// broadcasts allSent once the output Buffer is empty again. It exits
// once mode is exit and nothing is left to send.
func (s *Socket) senderLoop(ctx context.Context) int {
	for {
		s.mu.Lock()
		for s.out.Size() == 0 && workerMode(s.mode.Load()) == modeRun {
			s.outReady.Wait()
		}
		exiting := workerMode(s.mode.Load()) == modeExit
		toSend := s.out.Bytes()
		s.out.Reset()
		s.mu.Unlock()

		if len(toSend) > 0 {
			if _, err := writeFull(s.conn, toSend); err != nil {
				if !cos.IsRetriableConnErr(err) {
					s.notifyError(-1, err.Error())
				} else {
					s.notifyError(-2, err.Error())
				}
				// the connection is dead: nothing further will ever be
				// sent, so wake anyone waiting for the queue to drain.
				s.allSent.Broadcast()
				go s.Close()
				return -1
			}
			xmetrics.BytesSent.Add(float64(len(toSend)))
			s.writeFinish.Notify(s)
			s.allSent.Broadcast()
		}

		if exiting {
			s.mu.Lock()
			empty := s.out.Size() == 0
			s.mu.Unlock()
			if empty {
				return 0
			}
		}
	}
}

func writeFull(w io.Writer, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := w.Write(p[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// receiverLoop blocks in Read on a fixed-size buffer of
// cos.SocketRecvBufSize bytes; on each successful read it appends the
// bytes to the end of the input Buffer under the socket mutex, leaving
// the read position where it was (the Buffer signals its own
// dataAvailable), then notifies readyRead once per drained batch rather
// than per byte. A closed connection - the expected outcome of Close() -
// ends the loop without raising error.
func (s *Socket) receiverLoop(ctx context.Context) int {
	stackBuf := make([]byte, cos.SocketRecvBufSize)
	for {
		n, err := s.conn.Read(stackBuf[:])
		if n > 0 {
			s.mu.Lock()
			readPos := s.in.Pos()
			s.in.Seek(s.in.Size())
			s.in.Write(stackBuf[:n])
			s.in.Seek(readPos)
			s.mu.Unlock()
			xmetrics.BytesReceived.Add(float64(n))
			s.readyRead.Notify(s)
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				go s.Close()
				return 0
			}
			if cos.IsErrConnectionReset(err) {
				s.notifyError(-2, err.Error())
			} else {
				s.notifyError(-1, err.Error())
			}
			s.allSent.Broadcast()
			go s.Close()
			return -1
		}
	}
}

// Close drains any unsent output, tears down the connector, sender and
// receiver threads, and transitions to disconnected. It is idempotent.
func (s *Socket) Close() {
	s.mu.Lock()
	if s.State() == StateDisconnecting || s.State() == StateDisconnected {
		s.mu.Unlock()
		return
	}
	if s.addr != nil {
		s.addr.LookupFinished().RemoveObject(s)
	}
	wasConnected := s.State() == StateConnected
	for wasConnected && s.out.Size() != 0 {
		s.allSent.Wait()
	}
	if s.conn != nil {
		s.conn.Close()
	}
	s.state.Store(int32(StateDisconnecting))
	s.mode.Store(int32(modeExit))
	s.outReady.Broadcast()
	s.mu.Unlock()

	if s.connectorTh != nil {
		s.connectorTh.Terminate()
	}

	var g errgroup.Group
	for _, t := range []*thread.Thread{s.connectorTh, s.senderTh, s.receiverTh} {
		t := t
		if t == nil {
			continue
		}
		g.Go(func() error {
			t.Join()
			return nil
		})
	}
	_ = g.Wait()

	s.state.Store(int32(StateDisconnected))
	xmetrics.SocketsClosed.Inc()
	s.disconnected.Notify(s)
}
