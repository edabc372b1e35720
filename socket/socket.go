// Package socket implements a TCP connection as an async state machine:
// addressLookup -> initialized -> connecting -> connected ->
// disconnecting -> disconnected, driven by a connector thread and a
// cooperating sender/receiver worker pair once connected.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package socket

import (
	"encoding/binary"
	"net"
	"sync/atomic"

	"github.com/tfcore/tf/address"
	"github.com/tfcore/tf/audience"
	"github.com/tfcore/tf/object"
	"github.com/tfcore/tf/stream"
	"github.com/tfcore/tf/thread"
	"github.com/tfcore/tf/xsync"
)

type State int32

const (
	StateAddressLookup State = iota
	StateInitialized
	StateConnecting
	StateConnected
	StateDisconnecting
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateAddressLookup:
		return "addressLookup"
	case StateInitialized:
		return "initialized"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

var socketClass = &object.ClassDescriptor{
	Name: "Socket",
	New:  func() object.Ref { return &Socket{} },
}

// workerMode is shared by the sender and receiver goroutines so Close
// can tell both to unwind.
type workerMode int32

const (
	modeRun workerMode = iota
	modeExit
)

// Socket is an Object and a Stream: reads pull from the input Buffer,
// writes append to the output Buffer and wake the sender.
type Socket struct {
	object.Base

	mu    *xsync.Mutex
	state atomic.Int32

	addr *address.Address
	conn net.Conn

	out      *stream.Buffer
	in       *stream.Buffer
	allSent  *xsync.Condition // broadcast once out drains to empty
	outReady *xsync.Condition // broadcast whenever out gains bytes, or on shutdown

	connected    *audience.Audience
	disconnected *audience.Audience
	readyRead    *audience.Audience
	writeFinish  *audience.Audience
	errorAud     *audience.Audience

	connectorTh *thread.Thread
	senderTh    *thread.Thread
	receiverTh  *thread.Thread
	mode        atomic.Int32
}

// ErrorInfo is the payload notified on the error Audience.
type ErrorInfo struct {
	Code    int
	Message string
}

// NewFromHostPort begins a socket in state addressLookup: it installs a
// lookupFinished observer on a fresh Address and transitions to
// initialized on successful resolution.
func NewFromHostPort(host string, port uint16) *Socket {
	s := object.New(socketClass).(*Socket)
	s.init()
	s.state.Store(int32(StateAddressLookup))
	s.addr = address.LookupHostCStr(host, port)
	s.addr.LookupFinished().Insert(s, func(recv object.Ref, subject object.Ref, _ ...any) {
		sock := recv.(*Socket)
		if sock.addr.IsValid() {
			sock.state.Store(int32(StateInitialized))
		} else {
			sock.state.Store(int32(StateDisconnected))
			sock.disconnected.Notify(sock)
		}
	})
	return s
}

func (s *Socket) init() {
	s.mu = xsync.NewMutex()
	s.out = stream.OpenEmpty()
	s.out.SetByteOrder(binary.LittleEndian)
	s.in = stream.OpenEmpty()
	s.in.SetByteOrder(binary.LittleEndian)
	s.allSent = xsync.NewCondition(s.mu)
	s.outReady = xsync.NewCondition(s.mu)
	s.connected = audience.New()
	s.disconnected = audience.New()
	s.readyRead = audience.New()
	s.writeFinish = audience.New()
	s.errorAud = audience.New()
	s.mode.Store(int32(modeRun))
}

func (s *Socket) State() State { return State(s.state.Load()) }

func (s *Socket) Connected() *audience.Audience    { return s.connected }
func (s *Socket) Disconnected() *audience.Audience { return s.disconnected }
func (s *Socket) ReadyRead() *audience.Audience    { return s.readyRead }
func (s *Socket) WriteFinished() *audience.Audience { return s.writeFinish }
func (s *Socket) Error() *audience.Audience         { return s.errorAud }

func (s *Socket) notifyError(code int, msg string) {
	s.errorAud.Notify(s, ErrorInfo{Code: code, Message: msg})
}

var _ stream.Stream = (*Socket)(nil)
