package main

import (
	"crypto/rand"
	"sync"
)

const (
	roomCodeLength  = 6
	roomCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Registry owns every live room, keyed by code. It is constructed once in
// ServePage and passed by handle; nothing reaches it through globals.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func newRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// CreateRoom generates a collision-free code and registers a room with the
// creator as host and sole player.
func (reg *Registry) CreateRoom(name, hostName, hostID string, maxPlayers, maxRounds int) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var code string
	for {
		code = randomRoomCode()
		if _, exists := reg.rooms[code]; !exists {
			break
		}
	}

	room := newRoom(code, name, hostID, hostName, maxPlayers, maxRounds)
	reg.rooms[code] = room
	return room
}

func (reg *Registry) Get(code string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Delete removes a room; removing an absent code is a no-op.
func (reg *Registry) Delete(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// List snapshots the current rooms, for the reaper.
func (reg *Registry) List() []*Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	out := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		out = append(out, room)
	}
	return out
}

func randomRoomCode() string {
	// Bytes at or above the largest multiple of the alphabet size are
	// discarded, keeping every letter equally likely.
	const limit = 256 - 256%len(roomCodeLetters)

	out := make([]byte, roomCodeLength)
	buf := make([]byte, 1)
	for i := 0; i < roomCodeLength; {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		if int(buf[0]) >= limit {
			continue
		}
		out[i] = roomCodeLetters[int(buf[0])%len(roomCodeLetters)]
		i++
	}
	return string(out)
}
