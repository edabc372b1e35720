package tlsreq

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/tfcore/tf/object"
	"github.com/tfcore/tf/xmetrics"
)

// run is the TLS worker thread's entry point: it stands up an in-memory
// net.Pipe() to play the OpenSSL rbio/wbio pair, drives the handshake,
// sends the request content, and accumulates the decrypted response
// until the underlying Socket disconnects.
func (r *TlsRequest) run(ctx context.Context) int {
	peer, self := net.Pipe()

	r.mu.Lock()
	r.pipeSelf, r.pipePeer = self, peer
	cfg := r.config
	if cfg == nil {
		cfg = &tls.Config{ServerName: r.hostName, InsecureSkipVerify: r.insecureSkipVerify} //nolint:gosec
	}
	conn := tls.Client(peer, cfg)
	r.tlsConn = conn
	r.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)

	r.sock.ReadyRead().Insert(r, func(recv object.Ref, _ object.Ref, _ ...any) {
		select {
		case recv.(*TlsRequest).wake <- struct{}{}:
		default:
		}
	})

	go r.pumpToSocket(self, stop)
	go r.pumpFromSocket(self, stop)

	if err := conn.Handshake(); err != nil {
		xmetrics.TLSHandshakesFailed.Inc()
		r.status.Store(int32(StatusError))
		self.Close()
		r.sock.Close()
		r.markDone()
		r.finished.Notify(r)
		return -1
	}
	xmetrics.TLSHandshakesSucceeded.Inc()

	if body := r.requestContent.ConstData(); len(body) > 0 {
		if _, err := conn.Write(body); err != nil {
			r.status.Store(int32(StatusError))
			self.Close()
			r.sock.Close()
			r.markDone()
			r.finished.Notify(r)
			return -1
		}
	}

	buf := make([]byte, 64*1024)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			r.mu.Lock()
			r.accumulatedResponse.AppendBytes(buf[:n])
			r.mu.Unlock()
			r.readyRead.Notify(r)
		}
		if err != nil {
			break
		}
	}
	self.Close()

	r.mu.Lock()
	if r.Status() == StatusSubmitted {
		r.status.Store(int32(StatusFinished))
	}
	r.mu.Unlock()
	r.markDone()
	r.finished.Notify(r)
	return 0
}

// pumpToSocket forwards ciphertext the TLS client wants to send (the
// "wbio" side) into the Socket's output Buffer.
func (r *TlsRequest) pumpToSocket(self net.Conn, stop <-chan struct{}) {
	buf := make([]byte, 16*1024)
	for {
		n, err := self.Read(buf)
		if n > 0 {
			if _, werr := r.sock.Write(buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
		select {
		case <-stop:
			return
		default:
		}
	}
}

// pumpFromSocket forwards ciphertext the Socket has received (the
// "rbio" side) into the TLS client, waking on the Socket's readyRead
// audience rather than polling.
func (r *TlsRequest) pumpFromSocket(self net.Conn, stop <-chan struct{}) {
	buf := make([]byte, 16*1024)
	for {
		select {
		case <-r.wake:
		case <-stop:
			return
		}
		for {
			n, err := r.sock.Read(buf)
			if n > 0 {
				if _, werr := self.Write(buf[:n]); werr != nil {
					return
				}
			}
			if err != nil {
				break
			}
		}
	}
}

// onSocketDisconnected unsticks the TLS pump (if one ever started) and
// finalizes state for requests that never reached a connected Socket.
func (r *TlsRequest) onSocketDisconnected() {
	r.mu.Lock()
	self, peer, started := r.pipeSelf, r.pipePeer, r.th != nil
	r.mu.Unlock()

	if self != nil {
		self.Close()
	}
	if peer != nil {
		peer.Close()
	}

	if !started && r.Status() == StatusSubmitted {
		r.status.Store(int32(StatusError))
		r.markDone()
		r.finished.Notify(r)
	}
}
