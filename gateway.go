package main

import (
	"sync"

	"github.com/rs/zerolog/log"
)

const sendBufferSize = 32

// subscriber is the outbound half of one connection: a buffered channel
// drained by that connection's write pump.
type subscriber struct {
	id   string
	send chan any
}

// Gateway fans events out to every connection bound to a room. Delivery is
// best-effort: a recipient whose buffer is full, or who is already gone, is
// silently skipped and never retried. Each subscriber's channel preserves
// publish order for that recipient.
type Gateway struct {
	mu       sync.RWMutex
	subs     map[string]*subscriber
	sessions *SessionIndex
}

func newGateway(sessions *SessionIndex) *Gateway {
	return &Gateway{
		subs:     make(map[string]*subscriber),
		sessions: sessions,
	}
}

func (g *Gateway) Subscribe(connID string) *subscriber {
	sub := &subscriber{
		id:   connID,
		send: make(chan any, sendBufferSize),
	}

	g.mu.Lock()
	g.subs[connID] = sub
	g.mu.Unlock()

	return sub
}

// Unsubscribe drops the connection and closes its channel, ending the write
// pump. Idempotent.
func (g *Gateway) Unsubscribe(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if sub, ok := g.subs[connID]; ok {
		delete(g.subs, connID)
		close(sub.send)
	}
}

// Send delivers an event to a single connection. The read lock is held
// across the channel send so an Unsubscribe cannot close the channel out
// from under it.
func (g *Gateway) Send(connID string, event any) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	sub, ok := g.subs[connID]
	if !ok {
		return
	}

	select {
	case sub.send <- event:
	default:
		log.Debug().Str("conn", connID).Msg("dropped event for slow connection")
	}
}

// Publish delivers an event to every connection bound to the room.
func (g *Gateway) Publish(roomCode string, event any) {
	for _, connID := range g.sessions.ConnsIn(roomCode) {
		g.Send(connID, event)
	}
}
