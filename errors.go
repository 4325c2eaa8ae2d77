/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
)

// Error strings double as the client-facing text of "error" events, so they
// keep the capitalization the web client expects.
var (
	ErrAlreadyJoined  = errors.New("Already in room")
	ErrInvalidCommand = errors.New("Invalid command")
	ErrRoomFull       = errors.New("Room is full")
	ErrRoomNotFound   = errors.New("Room not found")
)
