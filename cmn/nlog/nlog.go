// Package nlog is a small buffered, severity-leveled logger used by every
// package in this module in place of fmt.Print*/log.
/*
 * Copyright (c) 2023, NVIDIA CORPORATION. All rights reserved.
 */
package nlog

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/tfcore/tf/cmn/mono"
)

type severity int

const (
	sevInfo severity = iota
	sevWarn
	sevErr
)

func (s severity) String() string {
	switch s {
	case sevWarn:
		return "W"
	case sevErr:
		return "E"
	default:
		return "I"
	}
}

const flushIval = 2 * time.Second

var (
	mu       sync.Mutex
	out      = os.Stderr
	buf      strings.Builder
	lastFlush int64
)

func InfoDepth(depth int, args ...any) { logln(sevInfo, depth+1, args...) }
func Infoln(args ...any)               { logln(sevInfo, 1, args...) }
func Infof(format string, args ...any) { logf(sevInfo, 1, format, args...) }

func Warningln(args ...any)               { logln(sevWarn, 1, args...) }
func Warningf(format string, args ...any) { logf(sevWarn, 1, format, args...) }

func ErrorDepth(depth int, args ...any) { logln(sevErr, depth+1, args...) }
func Errorln(args ...any)               { logln(sevErr, 1, args...) }
func Errorf(format string, args ...any) { logf(sevErr, 1, format, args...) }

func logln(sev severity, depth int, args ...any) {
	write(sev, depth, fmt.Sprintln(args...))
}

func logf(sev severity, depth int, format string, args ...any) {
	write(sev, depth, fmt.Sprintf(format, args...))
}

func write(sev severity, depth int, msg string) {
	_, file, line, ok := runtime.Caller(depth + 1)
	if ok {
		if i := strings.LastIndexByte(file, '/'); i >= 0 {
			file = file[i+1:]
		}
	} else {
		file, line = "???", 0
	}
	ts := time.Now().Format("0102 15:04:05.000000")

	mu.Lock()
	fmt.Fprintf(&buf, "%s%s %s:%d] %s", sev, ts, file, line, msg)
	if !strings.HasSuffix(msg, "\n") {
		buf.WriteByte('\n')
	}
	now := mono.NanoTime()
	if sev >= sevWarn || buf.Len() > 32*1024 || mono.Since(lastFlush) > flushIval {
		flushLocked(now)
	}
	mu.Unlock()
}

func flushLocked(now int64) {
	out.WriteString(buf.String())
	buf.Reset()
	lastFlush = now
}

// Flush drains buffered log lines. Pass exit=true on process shutdown to
// also sync the underlying file (stderr by default, so this is a no-op
// unless SetOutput redirected logging to a file).
func Flush(exit ...bool) {
	mu.Lock()
	flushLocked(mono.NanoTime())
	mu.Unlock()
	if len(exit) > 0 && exit[0] {
		out.Sync()
	}
}

// SetOutput redirects logging away from stderr, e.g. to a rotated file
// maintained by the caller.
func SetOutput(f *os.File) {
	mu.Lock()
	out = f
	mu.Unlock()
}
