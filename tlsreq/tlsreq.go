// Package tlsreq implements an async TLS client: submit a request body
// over a Socket, accumulate the decrypted response, and notify
// readyRead/finished the same way Socket notifies its own audiences.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package tlsreq

import (
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"

	"github.com/tfcore/tf/block"
	"github.com/tfcore/tf/cmn/debug"
	"github.com/tfcore/tf/object"
	"github.com/tfcore/tf/socket"
	"github.com/tfcore/tf/thread"
	"github.com/tfcore/tf/xmetrics"
	"github.com/tfcore/tf/xsync"

	"github.com/tfcore/tf/audience"
)

type Status int32

const (
	StatusInitialized Status = iota
	StatusSubmitted
	StatusFinished
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusSubmitted:
		return "submitted"
	case StatusFinished:
		return "finished"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

var tlsRequestClass = &object.ClassDescriptor{
	Name: "TlsRequest",
	New:  func() object.Ref { return &TlsRequest{} },
}

// TlsRequest is an Object: submit a request body over TLS to
// hostName:port, accumulate the plaintext response, and notify
// readyRead as it arrives and finished once the exchange concludes.
type TlsRequest struct {
	object.Base

	mu       *xsync.Mutex
	hostName string
	port     uint16

	requestContent      block.Block
	accumulatedResponse block.Block

	status atomic.Int32

	insecureSkipVerify bool
	config             *tls.Config

	sock *socket.Socket
	th   *thread.Thread

	tlsConn  *tls.Conn
	pipeSelf net.Conn
	pipePeer net.Conn
	wake     chan struct{}
	done     chan struct{}
	doneOnce sync.Once

	readyRead *audience.Audience
	finished  *audience.Audience
}

// New constructs a TlsRequest targeting host:port with the given
// request body. insecureSkipVerify should only ever be true in tests
// against a self-signed TlsCertificate.
func New(host string, port uint16, content block.Block, insecureSkipVerify bool) *TlsRequest {
	r := object.New(tlsRequestClass).(*TlsRequest)
	r.mu = xsync.NewMutex()
	r.hostName = host
	r.port = port
	r.requestContent = content
	r.accumulatedResponse = block.Empty()
	r.status.Store(int32(StatusInitialized))
	r.insecureSkipVerify = insecureSkipVerify
	r.wake = make(chan struct{}, 1)
	r.done = make(chan struct{})
	r.readyRead = audience.New()
	r.finished = audience.New()
	return r
}

// SetTLSConfig overrides the tls.Config used for the handshake; call
// before Submit. Tests against a local self-signed TlsCertificate use
// this to install a RootCAs pool instead of InsecureSkipVerify.
func (r *TlsRequest) SetTLSConfig(cfg *tls.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = cfg
}

func (r *TlsRequest) Status() Status               { return Status(r.status.Load()) }
func (r *TlsRequest) ReadyRead() *audience.Audience { return r.readyRead }
func (r *TlsRequest) Finished() *audience.Audience  { return r.finished }
func (r *TlsRequest) HostName() string              { return r.hostName }
func (r *TlsRequest) Port() uint16                  { return r.port }

// Submit opens a Socket to hostName:port and arranges for the TLS
// worker thread to start once it connects; I/O happens entirely off
// this call's goroutine.
func (r *TlsRequest) Submit() {
	debug.Assert(r.Status() == StatusInitialized, "TlsRequest.Submit called outside state initialized")
	r.status.Store(int32(StatusSubmitted))
	xmetrics.TLSHandshakesAttempted.Inc()

	r.sock = socket.NewFromHostPort(r.hostName, r.port)
	r.sock.Connected().Insert(r, func(recv object.Ref, _ object.Ref, _ ...any) {
		rr := recv.(*TlsRequest)
		rr.mu.Lock()
		rr.th = thread.New(rr.run)
		th := rr.th
		rr.mu.Unlock()
		th.Start()
	})
	r.sock.Disconnected().Insert(r, func(recv object.Ref, _ object.Ref, _ ...any) {
		rr := recv.(*TlsRequest)
		rr.onSocketDisconnected()
	})
	r.sock.Error().Insert(r, func(recv object.Ref, _ object.Ref, _ ...any) {
		recv.(*TlsRequest).status.Store(int32(StatusError))
	})
	r.sock.Open()
}

// WaitForFinished blocks until the exchange has reached Finished or
// Error.
func (r *TlsRequest) WaitForFinished() {
	<-r.done
}

// ReadAll returns the accumulated response and clears it.
func (r *TlsRequest) ReadAll() block.Block {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.accumulatedResponse.Clone()
	r.accumulatedResponse = block.Empty()
	return out
}

func (r *TlsRequest) markDone() {
	r.doneOnce.Do(func() { close(r.done) })
}
