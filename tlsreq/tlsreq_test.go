// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package tlsreq_test

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/tfcore/tf/block"
	"github.com/tfcore/tf/tlsreq"
)

// tlsEchoServer starts a one-shot TLS server bound to keyPair that
// reads whatever the client sends, writes back "pong", and closes.
func tlsEchoServer(keyPair tls.Certificate) uint16 {
	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: []tls.Certificate{keyPair}})
	Expect(err).NotTo(HaveOccurred())
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		_, _ = conn.Write([]byte("pong"))
	}()
	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	return uint16(port)
}

var _ = Describe("TlsRequest", func() {
	It("completes a handshake, sends content, and accumulates the response", func() {
		cert, err := tlsreq.SelfSignCertificate([]string{"localhost"}, time.Hour)
		Expect(err).NotTo(HaveOccurred())

		keyPair, err := tls.X509KeyPair(cert.PEM(), cert.PrivateKeyPEM())
		Expect(err).NotTo(HaveOccurred())

		port := tlsEchoServer(keyPair)

		pool := x509.NewCertPool()
		pool.AddCert(cert.X509())

		req := tlsreq.New("127.0.0.1", port, block.FromCStr("ping"), false)
		req.SetTLSConfig(&tls.Config{ServerName: "localhost", RootCAs: pool})
		req.Submit()

		req.WaitForFinished()
		Expect(req.Status()).To(Equal(tlsreq.StatusFinished))

		resp := req.ReadAll()
		Expect(string(resp.ConstData())).To(Equal("pong"))
	})

	It("reports Error when the server certificate isn't trusted", func() {
		cert, err := tlsreq.SelfSignCertificate([]string{"localhost"}, time.Hour)
		Expect(err).NotTo(HaveOccurred())
		keyPair, err := tls.X509KeyPair(cert.PEM(), cert.PrivateKeyPEM())
		Expect(err).NotTo(HaveOccurred())

		port := tlsEchoServer(keyPair)

		req := tlsreq.New("127.0.0.1", port, block.FromCStr("ping"), false)
		req.SetTLSConfig(&tls.Config{ServerName: "localhost"}) // no RootCAs: untrusted
		req.Submit()

		req.WaitForFinished()
		Expect(req.Status()).To(Equal(tlsreq.StatusError))
	})
})

var _ = Describe("TlsCertificate", func() {
	It("verifies wildcard domains the way OpenSSL does", func() {
		cert, err := tlsreq.SelfSignCertificate([]string{"*.example.org"}, time.Hour)
		Expect(err).NotTo(HaveOccurred())

		Expect(cert.VerifyDomain("foo.example.org")).To(BeTrue())
		Expect(cert.VerifyDomain("a.foo.example.org")).To(BeFalse())
		Expect(cert.VerifyDomain("example.org")).To(BeFalse())
	})

	It("round-trips through PEM", func() {
		cert, err := tlsreq.SelfSignCertificate([]string{"round.trip.test"}, time.Hour)
		Expect(err).NotTo(HaveOccurred())

		parsed, err := tlsreq.ParseCertificatePEM(cert.PEM())
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Equal(cert)).To(BeTrue())
		Expect(parsed.Subject()).To(Equal("round.trip.test"))
		Expect(parsed.IsExpired()).To(BeFalse())
	})
})
