// Package address implements the async host-name resolver: a background
// Thread resolves host:port, records the result under the Address's own
// mutex, and notifies a lookupFinished Audience.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package address

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/singleflight"

	"github.com/tfcore/tf/audience"
	"github.com/tfcore/tf/cmn/cos"
	"github.com/tfcore/tf/object"
	"github.com/tfcore/tf/thread"
	"github.com/tfcore/tf/xsync"
)

type Status int32

const (
	StatusPending Status = iota
	StatusValid
	StatusInvalid
)

// Endpoint is one resolved socket address: the {family, type, protocol}
// triple plus the IP and port needed to open a connection to it.
type Endpoint struct {
	Family   int
	Type     int
	Protocol int
	IP       net.IP
	Port     uint16
}

var addressClass = &object.ClassDescriptor{
	Name: "Address",
	New:  func() object.Ref { return &Address{} },
}

// group dedupes concurrent resolutions of the same host:port across
// every Address in the process, so ten sockets dialing the same host at
// once issue one DNS query rather than ten.
var group singleflight.Group

// Address is an Object holding a resolved host name with zero or more
// socket endpoints.
type Address struct {
	object.Base

	mu             *xsync.Mutex
	host           string
	port           uint16
	status         atomic.Int32
	endpoints      []Endpoint
	lookupFinished *audience.Audience
	th             *thread.Thread
}

// LookupHostCStr stores host/port and starts a resolver thread.
func LookupHostCStr(host string, port uint16) *Address {
	a := object.New(addressClass).(*Address)
	a.mu = xsync.NewMutex()
	a.host = host
	a.port = port
	a.status.Store(int32(StatusPending))
	a.lookupFinished = audience.New()
	a.startResolve()
	return a
}

func (a *Address) startResolve() {
	object.Retain(a) // kept alive until the resolver notifies and exits
	a.th = thread.New(func(ctx context.Context) int {
		defer object.Release(a)

		key := fmt.Sprintf("%s:%d", a.host, a.port)
		v, err, _ := group.Do(key, func() (any, error) {
			lctx, cancel := context.WithTimeout(context.Background(), cos.AddressLookupTimeout)
			defer cancel()
			return net.DefaultResolver.LookupIPAddr(lctx, a.host)
		})

		a.mu.Lock()
		if err != nil {
			a.status.Store(int32(StatusInvalid))
		} else {
			addrs := v.([]net.IPAddr)
			eps := make([]Endpoint, 0, len(addrs))
			for _, ip := range addrs {
				family := syscall.AF_INET
				if ip.IP.To4() == nil {
					family = syscall.AF_INET6
				}
				eps = append(eps, Endpoint{
					Family: family, Type: syscall.SOCK_STREAM, Protocol: syscall.IPPROTO_TCP,
					IP: ip.IP, Port: a.port,
				})
			}
			a.endpoints = eps
			a.status.Store(int32(StatusValid))
		}
		a.mu.Unlock()

		a.lookupFinished.Notify(a)
		return 0
	})
	a.th.Start()
}

// WaitForFinished joins the resolver if it is running; otherwise
// returns immediately.
func (a *Address) WaitForFinished() {
	a.mu.Lock()
	th := a.th
	a.mu.Unlock()
	if th != nil {
		th.Join()
	}
}

func (a *Address) Status() Status { return Status(a.status.Load()) }
func (a *Address) IsValid() bool  { return a.Status() == StatusValid }

func (a *Address) LookupFinished() *audience.Audience { return a.lookupFinished }

// SocketParameters returns the {family, type, protocol} for the first
// resolved endpoint.
func (a *Address) SocketParameters() (Endpoint, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.endpoints) == 0 {
		return Endpoint{}, false
	}
	return a.endpoints[0], true
}

// ToString formats "HOST port:PORT" from the chosen endpoint.
func (a *Address) ToString() string {
	ep, ok := a.SocketParameters()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s port:%d", ep.IP.String(), ep.Port)
}
