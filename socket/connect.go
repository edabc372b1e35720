package socket

import (
	"context"
	"fmt"
	"net"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/tfcore/tf/cmn/debug"
	"github.com/tfcore/tf/thread"
	"github.com/tfcore/tf/xmetrics"
)

// Open transitions initialized -> connecting and runs the blocking
// connect on a dedicated connector thread, so Open itself returns
// immediately.
func (s *Socket) Open() {
	debug.Assert(s.State() == StateInitialized, "Socket.Open called outside state initialized")
	s.state.Store(int32(StateConnecting))

	s.connectorTh = thread.New(func(ctx context.Context) int {
		ep, ok := s.addr.SocketParameters()
		if !ok {
			s.state.Store(int32(StateDisconnected))
			s.notifyError(-1, "no resolved address")
			s.disconnected.Notify(s)
			return -1
		}

		dialer := net.Dialer{}
		addr := fmt.Sprintf("%s:%d", ep.IP.String(), ep.Port)
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			s.state.Store(int32(StateDisconnected))
			s.notifyError(-1, errors.Wrap(err, "dial").Error())
			s.disconnected.Notify(s)
			return -1
		}

		applySockopts(conn)

		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()

		s.state.Store(int32(StateConnected))
		xmetrics.SocketsOpened.Inc()
		s.connected.Notify(s)
		s.startWorkers()
		return 0
	}, thread.WithTermination())
	s.connectorTh.Start()
}

// applySockopts enables TCP_NODELAY and keepalive on the raw fd
// underlying conn, best-effort: a platform that rejects one of these
// options does not fail the connection.
func applySockopts(conn net.Conn) {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}
	raw, err := tc.SyscallConn()
	if err != nil {
		return
	}
	_ = raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), syscall.IPPROTO_TCP, unix.TCP_NODELAY, 1)
		_ = unix.SetsockoptInt(int(fd), syscall.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
	})
}
