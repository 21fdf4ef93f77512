// internal/api/websocket_test.go
package api

import (
	"sync"
	"testing"
	"time"
)

func TestClientPingConcurrentWithExpiry(t *testing.T) {
	client := &EventClient{
		clientID:  "test-client",
		send:      make(chan []byte, 1),
		lastPing:  time.Now().UnixNano(),
		createdAt: time.Now(),
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			client.UpdatePing()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if client.IsExpired(time.Minute) {
				t.Error("freshly pinged client reported expired")
				return
			}
		}
	}()

	wg.Wait()
}

func TestClientExpiry(t *testing.T) {
	client := &EventClient{clientID: "stale"}
	client.UpdatePing()

	if client.IsExpired(time.Minute) {
		t.Error("client expired right after a ping")
	}
	if !client.IsExpired(0) {
		t.Error("zero timeout should always expire")
	}

	before := client.LastPing()
	client.UpdatePing()
	if client.LastPing().Before(before) {
		t.Error("ping timestamp moved backwards")
	}
}
