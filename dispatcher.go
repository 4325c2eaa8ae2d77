package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Dispatcher validates inbound commands against the session index and room
// registry, then applies them to the target room. All mutations of one room
// happen under that room's lock; commands for different rooms proceed in
// parallel.
type Dispatcher struct {
	cfg      *Config
	catalog  *Catalog
	rooms    *Registry
	sessions *SessionIndex
	gateway  *Gateway
}

func newDispatcher(cfg *Config, catalog *Catalog, rooms *Registry, sessions *SessionIndex, gateway *Gateway) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		catalog:  catalog,
		rooms:    rooms,
		sessions: sessions,
		gateway:  gateway,
	}
}

// Dispatch routes one raw client message. Malformed or unknown commands get
// an "error" event back on the originating connection only.
func (d *Dispatcher) Dispatch(connID string, raw []byte) {
	var cmd ClientCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		d.gateway.Send(connID, errorEvent(ErrInvalidCommand))
		return
	}

	switch cmd.Type {
	case "create-room":
		if cmd.RoomName == "" || cmd.PlayerName == "" {
			d.gateway.Send(connID, errorEvent(ErrInvalidCommand))
			return
		}
		d.createRoom(connID, cmd)
	case "join-room":
		if cmd.RoomID == "" || cmd.PlayerName == "" {
			d.gateway.Send(connID, errorEvent(ErrInvalidCommand))
			return
		}
		d.joinRoom(connID, cmd)
	case "start-game":
		d.startGame(connID)
	case "submit-guess":
		if cmd.Guess == "" {
			d.gateway.Send(connID, errorEvent(ErrInvalidCommand))
			return
		}
		d.submitGuess(connID, cmd.Guess)
	case "send-message":
		if cmd.Message == "" {
			d.gateway.Send(connID, errorEvent(ErrInvalidCommand))
			return
		}
		d.sendChat(connID, cmd.Message)
	default:
		d.gateway.Send(connID, errorEvent(ErrInvalidCommand))
	}
}

// resolveRoom maps a connection to the room it joined. Connections without a
// session are ignored, matching the upstream protocol: room-scoped commands
// from a stray connection are dropped without an error event.
func (d *Dispatcher) resolveRoom(connID string) (*Room, bool) {
	code, ok := d.sessions.Lookup(connID)
	if !ok {
		return nil, false
	}
	room, err := d.rooms.Get(code)
	if err != nil {
		return nil, false
	}
	return room, true
}

func (d *Dispatcher) createRoom(connID string, cmd ClientCommand) {
	if _, ok := d.sessions.Lookup(connID); ok {
		d.gateway.Send(connID, errorEvent(ErrAlreadyJoined))
		return
	}

	room := d.rooms.CreateRoom(cmd.RoomName, cmd.PlayerName, connID, d.cfg.maxPlayers, d.cfg.maxRounds)
	d.sessions.Bind(connID, room.Code)

	room.mu.Lock()
	snap := room.snapshotLocked()
	room.mu.Unlock()

	d.gateway.Send(connID, RoomCreatedEvent{
		Event:    "room-created",
		RoomID:   room.Code,
		Room:     snap,
		PlayerID: connID,
	})

	log.Info().Str("room", room.Code).Str("player", cmd.PlayerName).Msg("room created")
}

func (d *Dispatcher) joinRoom(connID string, cmd ClientCommand) {
	if _, ok := d.sessions.Lookup(connID); ok {
		d.gateway.Send(connID, errorEvent(ErrAlreadyJoined))
		return
	}

	room, err := d.rooms.Get(cmd.RoomID)
	if err != nil {
		d.gateway.Send(connID, errorEvent(err))
		return
	}

	room.mu.Lock()
	room.lastActive = time.Now()
	if err := room.addPlayerLocked(connID, cmd.PlayerName); err != nil {
		room.mu.Unlock()
		d.gateway.Send(connID, errorEvent(err))
		return
	}
	// Binding under the room lock keeps joins and disconnect cleanup for the
	// same connection from straddling two rooms.
	d.sessions.Bind(connID, room.Code)
	snap := room.snapshotLocked()
	room.mu.Unlock()

	d.gateway.Publish(room.Code, PlayerJoinedEvent{
		Event:    "player-joined",
		Room:     snap,
		PlayerID: connID,
	})

	log.Info().Str("room", room.Code).Str("player", cmd.PlayerName).Msg("player joined")
}

func (d *Dispatcher) startGame(connID string) {
	room, ok := d.resolveRoom(connID)
	if !ok {
		return
	}

	room.mu.Lock()
	room.lastActive = time.Now()
	// Non-host start attempts are silently ignored, not surfaced.
	if !room.startLocked(connID, d.catalog.Random()) {
		room.mu.Unlock()
		return
	}
	snap := room.snapshotLocked()
	room.mu.Unlock()

	d.gateway.Publish(room.Code, GameStartedEvent{Event: "game-started", Room: snap})

	log.Info().Str("room", room.Code).Msg("game started")
}

func (d *Dispatcher) submitGuess(connID, guess string) {
	room, ok := d.resolveRoom(connID)
	if !ok {
		return
	}

	room.mu.Lock()
	room.lastActive = time.Now()

	if !room.Active || room.CurrentPuzzle == nil {
		room.mu.Unlock()
		return
	}
	player := room.playerLocked(connID)
	if player == nil {
		room.mu.Unlock()
		return
	}

	// Every guess is broadcast, win or lose, so the race stays visible.
	guessMsg := room.appendMessageLocked(connID, player.Name, guess, "guess")

	// While a round transition is pending the puzzle is already solved;
	// later matches of the same answer score nothing.
	correct := !room.pendingAdvance && guessMatches(guess, room.CurrentPuzzle.Answer)
	if !correct {
		room.mu.Unlock()
		d.gateway.Publish(room.Code, NewMessageEvent{Event: "new-message", Message: guessMsg})
		return
	}

	player.Score += 100
	answer := room.CurrentPuzzle.Answer
	sysMsg := room.appendMessageLocked("system", "Game",
		fmt.Sprintf("🎉 %s got it right! The answer was \"%s\"", player.Name, answer), "system")
	room.pendingAdvance = true
	fromRound := room.Round
	gen := room.generation
	winnerID := player.ID
	winnerName := player.Name
	snap := room.snapshotLocked()
	room.mu.Unlock()

	d.gateway.Publish(room.Code, NewMessageEvent{Event: "new-message", Message: guessMsg})
	d.gateway.Publish(room.Code, NewMessageEvent{Event: "new-message", Message: sysMsg})
	d.gateway.Publish(room.Code, CorrectGuessEvent{
		Event:      "correct-guess",
		PlayerID:   winnerID,
		PlayerName: winnerName,
		Answer:     answer,
		Room:       snap,
	})

	log.Debug().Str("room", room.Code).Str("player", winnerName).Int("round", fromRound).Msg("correct guess")

	code := room.Code
	time.AfterFunc(d.cfg.roundDelay, func() {
		d.advanceRound(code, gen, fromRound)
	})
}

// advanceRound fires after the post-guess delay. The room is re-derived by
// code, never through a captured pointer: a room deleted or restarted during
// the delay turns the timer into a no-op. The generation check pins the timer
// to the game run it was armed in, so a restart mid-delay sheds it too.
func (d *Dispatcher) advanceRound(code string, gen, fromRound int) {
	room, err := d.rooms.Get(code)
	if err != nil {
		return
	}

	room.mu.Lock()
	if !room.Active || !room.pendingAdvance || room.generation != gen || room.Round != fromRound {
		room.mu.Unlock()
		return
	}
	room.pendingAdvance = false
	room.lastActive = time.Now()

	if room.Round < room.MaxRounds {
		room.Round++
		room.CurrentPuzzle = d.catalog.Random()
		snap := room.snapshotLocked()
		room.mu.Unlock()

		d.gateway.Publish(code, NextPuzzleEvent{Event: "next-puzzle", Room: snap})

		log.Debug().Str("room", code).Int("round", fromRound+1).Msg("next round")
		return
	}

	room.Active = false
	room.CurrentPuzzle = nil
	room.completed = true
	winner := room.winnerLocked()
	snap := room.snapshotLocked()
	room.mu.Unlock()

	d.gateway.Publish(code, GameOverEvent{Event: "game-over", Room: snap, Winner: winner})

	log.Info().Str("room", code).Str("winner", winner.Name).Int("score", winner.Score).Msg("game over")
}

func (d *Dispatcher) sendChat(connID, text string) {
	room, ok := d.resolveRoom(connID)
	if !ok {
		return
	}

	room.mu.Lock()
	room.lastActive = time.Now()
	player := room.playerLocked(connID)
	if player == nil {
		room.mu.Unlock()
		return
	}
	msg := room.appendMessageLocked(connID, player.Name, text, "chat")
	room.mu.Unlock()

	d.gateway.Publish(room.Code, NewMessageEvent{Event: "new-message", Message: msg})
}

// Disconnect is the transport-level cleanup path: unbind the session, remove
// the player, and delete the room once its last player is gone. Routine
// lifecycle, never an error.
func (d *Dispatcher) Disconnect(connID string) {
	code, ok := d.sessions.Lookup(connID)
	if !ok {
		return
	}

	room, err := d.rooms.Get(code)
	if err != nil {
		d.sessions.Unbind(connID)
		return
	}

	room.mu.Lock()
	d.sessions.Unbind(connID)
	removed, empty := room.removePlayerLocked(connID)
	if empty {
		// Marked under the lock so a join that already fetched this room's
		// pointer can no longer slip in after the registry delete.
		room.dead = true
		room.mu.Unlock()
		d.teardownRoom(code)
		return
	}
	if !removed {
		room.mu.Unlock()
		return
	}
	room.lastActive = time.Now()
	snap := room.snapshotLocked()
	room.mu.Unlock()

	d.gateway.Publish(code, PlayerLeftEvent{
		Event:        "player-left",
		Room:         snap,
		LeftPlayerID: connID,
	})

	log.Info().Str("room", code).Str("conn", connID).Msg("player left")
}

// teardownRoom deletes a room and severs any connections still bound to it.
func (d *Dispatcher) teardownRoom(code string) {
	d.rooms.Delete(code)
	for _, connID := range d.sessions.ConnsIn(code) {
		d.sessions.Unbind(connID)
		d.gateway.Unsubscribe(connID)
	}

	log.Info().Str("room", code).Msg("room deleted")
}

// StartReaper periodically ends rooms idle past cfg.roomTimeout.
func (d *Dispatcher) StartReaper(ctx context.Context) {
	if d.cfg.roomTimeout <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(d.cfg.roomTimeout / 2)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.reapIdleRooms(time.Now().Add(-d.cfg.roomTimeout))
			}
		}
	}()
}

func (d *Dispatcher) reapIdleRooms(cutoff time.Time) {
	for _, room := range d.rooms.List() {
		room.mu.Lock()
		idle := room.lastActive.Before(cutoff)
		if idle {
			room.dead = true
		}
		room.mu.Unlock()

		if idle {
			log.Info().Str("room", room.Code).Msg("reaping idle room")
			d.teardownRoom(room.Code)
		}
	}
}
