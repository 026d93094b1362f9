// Package dblock serializes postgres-backed tests across package test binaries.
package dblock

import (
	"net"
	"testing"
	"time"
)

const lockAddr = "127.0.0.1:45433"

// Acquire blocks until no other test binary holds the lock and releases it when tb ends.
func Acquire(tb testing.TB) {
	tb.Helper()
	deadline := time.Now().Add(2 * time.Minute)
	for {
		ln, err := net.Listen("tcp", lockAddr)
		if err == nil {
			tb.Cleanup(func() { ln.Close() })
			return
		}
		if time.Now().After(deadline) {
			tb.Fatalf("acquire database test lock: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}
