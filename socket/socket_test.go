// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package socket_test

import (
	"net"
	"strconv"
	"sync"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/tfcore/tf/object"
	"github.com/tfcore/tf/socket"
)

// echoListener starts a one-shot TCP echo server and returns its port.
func echoListener() uint16 {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).NotTo(HaveOccurred())
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				if _, werr := conn.Write(buf[:n]); werr != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	return uint16(port)
}

var _ = Describe("Socket", func() {
	It("connects, echoes a write/read round trip, and closes cleanly", func() {
		port := echoListener()

		s := socket.NewFromHostPort("127.0.0.1", port)
		Eventually(s.State, time.Second).Should(Equal(socket.StateInitialized))

		s.Open()
		Eventually(s.State, time.Second).Should(Equal(socket.StateConnected))

		_, err := s.Write([]byte("hello"))
		Expect(err).NotTo(HaveOccurred())

		Eventually(s.Size, time.Second).Should(BeNumerically(">=", 5))

		buf := make([]byte, 5)
		n, err := s.Read(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hello"))

		s.Close()
		Eventually(s.State, time.Second).Should(Equal(socket.StateDisconnected))
	})

	It("transitions straight to disconnected when the host can't resolve", func() {
		s := socket.NewFromHostPort("this-host-does-not-exist.invalid", 80)
		Eventually(s.State, 2*time.Second).Should(Equal(socket.StateDisconnected))
	})

	It("orders writeFinished ahead of the terminal disconnected notification", func() {
		port := echoListener()

		s := socket.NewFromHostPort("127.0.0.1", port)
		Eventually(s.State, time.Second).Should(Equal(socket.StateInitialized))
		s.Open()
		Eventually(s.State, time.Second).Should(Equal(socket.StateConnected))

		var mu sync.Mutex
		var order []string
		s.WriteFinished().Insert(s, func(_ object.Ref, _ object.Ref, _ ...any) {
			mu.Lock()
			order = append(order, "writeFinished")
			mu.Unlock()
		})
		s.Disconnected().Insert(s, func(_ object.Ref, _ object.Ref, _ ...any) {
			mu.Lock()
			order = append(order, "disconnected")
			mu.Unlock()
		})

		_, err := s.Write([]byte("ping"))
		Expect(err).NotTo(HaveOccurred())
		Eventually(s.Size, time.Second).Should(BeNumerically(">=", 4))

		s.Close()
		Eventually(s.State, time.Second).Should(Equal(socket.StateDisconnected))

		mu.Lock()
		defer mu.Unlock()
		Expect(order).To(Equal([]string{"writeFinished", "disconnected"}))
	})
})
