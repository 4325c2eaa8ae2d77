package main

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type Message struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
	Type       string `json:"type"` // "chat", "guess" or "system"
}

// Room is a single game session. All mutation happens under mu, which the
// dispatcher holds for the duration of any command targeting this room;
// methods with a Locked suffix assume the caller already holds it.
type Room struct {
	mu sync.Mutex

	Code          string    `json:"id"`
	Name          string    `json:"name"`
	HostID        string    `json:"hostId"`
	Players       []*Player `json:"players"`
	CurrentPuzzle *Puzzle   `json:"currentPuzzle"`
	MaxPlayers    int       `json:"maxPlayers"`
	Active        bool      `json:"isActive"`
	Round         int       `json:"round"`
	MaxRounds     int       `json:"maxRounds"`
	Messages      []Message `json:"messages"`

	lastActive time.Time

	// pendingAdvance is set between a round's first correct guess and the
	// delayed round transition, so a round is only ever scored once.
	pendingAdvance bool

	// completed marks a finished game; unlike the lobby state it refuses
	// further start commands.
	completed bool

	// dead marks a room removed from the registry while a caller still
	// holds its pointer; joins must bounce off it.
	dead bool

	// generation increments on every start, so a round timer from an
	// earlier game run cannot consume the current run's transition.
	generation int
}

func newRoom(code, name, hostID, hostName string, maxPlayers, maxRounds int) *Room {
	return &Room{
		Code:       code,
		Name:       name,
		HostID:     hostID,
		Players:    []*Player{{ID: hostID, Name: hostName}},
		MaxPlayers: maxPlayers,
		Round:      1,
		MaxRounds:  maxRounds,
		Messages:   []Message{},
		lastActive: time.Now(),
	}
}

func (r *Room) playerLocked(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) addPlayerLocked(id, name string) error {
	// The room can be torn down between the registry lookup and taking the
	// lock; a pointer to it is then no longer a room anyone can join.
	if r.dead {
		return ErrRoomNotFound
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}
	if r.playerLocked(id) != nil {
		return ErrAlreadyJoined
	}
	r.Players = append(r.Players, &Player{ID: id, Name: name})
	return nil
}

// removePlayerLocked drops the player with the given id, promoting the next
// earliest joiner to host if the host left. It reports whether a player was
// removed and whether the room is now empty.
func (r *Room) removePlayerLocked(id string) (removed, empty bool) {
	r.Players = lo.Filter(r.Players, func(p *Player, _ int) bool {
		if p.ID == id {
			removed = true
			return false
		}
		return true
	})
	if !removed {
		return false, len(r.Players) == 0
	}
	if len(r.Players) == 0 {
		return true, true
	}
	if r.HostID == id {
		r.HostID = r.Players[0].ID
	}
	return true, false
}

// startLocked begins (or restarts) the game. Non-host callers and completed
// rooms are silently ignored.
func (r *Room) startLocked(connID string, puzzle *Puzzle) bool {
	if connID != r.HostID || r.completed {
		return false
	}
	r.Active = true
	r.Round = 1
	r.CurrentPuzzle = puzzle
	r.pendingAdvance = false
	r.generation++
	return true
}

func (r *Room) appendMessageLocked(playerID, playerName, text, kind string) Message {
	msg := Message{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		PlayerName: playerName,
		Message:    text,
		Timestamp:  time.Now().UnixMilli(),
		Type:       kind,
	}
	r.Messages = append(r.Messages, msg)
	return msg
}

// winnerLocked picks the strictly highest scorer; on ties the earliest
// joiner wins, which falls out of MaxBy keeping the first maximum.
func (r *Room) winnerLocked() Player {
	return *lo.MaxBy(r.Players, func(a, b *Player) bool {
		return a.Score > b.Score
	})
}

// snapshotLocked returns a deep copy safe to marshal outside the lock.
func (r *Room) snapshotLocked() *Room {
	players := make([]*Player, len(r.Players))
	for i, p := range r.Players {
		cp := *p
		players[i] = &cp
	}
	messages := make([]Message, len(r.Messages))
	copy(messages, r.Messages)

	return &Room{
		Code:          r.Code,
		Name:          r.Name,
		HostID:        r.HostID,
		Players:       players,
		CurrentPuzzle: r.CurrentPuzzle,
		MaxPlayers:    r.MaxPlayers,
		Active:        r.Active,
		Round:         r.Round,
		MaxRounds:     r.MaxRounds,
		Messages:      messages,
	}
}

// guessMatches compares a guess against the answer, ignoring case and
// surrounding whitespace.
func guessMatches(guess, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(answer))
}
