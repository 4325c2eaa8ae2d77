package main

// Messages coming from clients
type ClientCommand struct {
	Type       string `json:"type"`                 // "create-room", "join-room", "start-game", "submit-guess", "send-message"
	RoomName   string `json:"roomName,omitempty"`   // create-room
	PlayerName string `json:"playerName,omitempty"` // create-room / join-room
	RoomID     string `json:"roomId,omitempty"`     // join-room
	Guess      string `json:"guess,omitempty"`      // submit-guess
	Message    string `json:"message,omitempty"`    // send-message
}

// Messages sent to clients; the Event field discriminates.

// Sent only to the creator.
type RoomCreatedEvent struct {
	Event    string `json:"event"` // "room-created"
	RoomID   string `json:"roomId"`
	Room     *Room  `json:"room"`
	PlayerID string `json:"playerId"`
}

type PlayerJoinedEvent struct {
	Event    string `json:"event"` // "player-joined"
	Room     *Room  `json:"room"`
	PlayerID string `json:"playerId"`
}

type PlayerLeftEvent struct {
	Event        string `json:"event"` // "player-left"
	Room         *Room  `json:"room"`
	LeftPlayerID string `json:"leftPlayerId"`
}

type GameStartedEvent struct {
	Event string `json:"event"` // "game-started"
	Room  *Room  `json:"room"`
}

type NewMessageEvent struct {
	Event   string  `json:"event"` // "new-message"
	Message Message `json:"message"`
}

type CorrectGuessEvent struct {
	Event      string `json:"event"` // "correct-guess"
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Answer     string `json:"answer"`
	Room       *Room  `json:"room"`
}

type NextPuzzleEvent struct {
	Event string `json:"event"` // "next-puzzle"
	Room  *Room  `json:"room"`
}

type GameOverEvent struct {
	Event  string `json:"event"` // "game-over"
	Room   *Room  `json:"room"`
	Winner Player `json:"winner"`
}

// Sent to the originating connection only, never broadcast.
type ErrorEvent struct {
	Event   string `json:"event"` // "error"
	Message string `json:"message"`
}

func errorEvent(err error) ErrorEvent {
	return ErrorEvent{Event: "error", Message: err.Error()}
}
