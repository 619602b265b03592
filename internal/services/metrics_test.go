package services

import (
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/DiegoDaher/TCA-APP/internal/models"
)

func TestMetricsHubConcurrentAddRemove(t *testing.T) {
	hub := NewMetricsHub()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				conn := new(websocket.Conn)
				hub.Add(conn)
				hub.snapshot()
				hub.Remove(conn)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, hub.snapshot())
}

func TestMetricsHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewMetricsHub()
	// nobody draining the channel; the sampler loop must not stall
	for i := 0; i < 100; i++ {
		hub.Broadcast(models.MetricSample{})
	}
}
