package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWS upgrades a connection, assigns it an ephemeral id, and runs the
// pumps. A connection holds at most one session; create-room or join-room
// establishes it, the read pump's exit tears it down.
func serveWS(d *Dispatcher) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("ws upgrade failed")
			return
		}

		connID := uuid.NewString()
		sub := d.gateway.Subscribe(connID)

		log.Debug().Str("conn", connID).Str("remote", realIP(r)).Msg("connection opened")

		go writePump(conn, sub)
		readPump(conn, connID, d)
	}
}

func readPump(conn *websocket.Conn, connID string, d *Dispatcher) {
	defer func() {
		d.Disconnect(connID)
		d.gateway.Unsubscribe(connID)
		_ = conn.Close()
		log.Debug().Str("conn", connID).Msg("connection closed")
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		d.Dispatch(connID, raw)
	}
}

func writePump(conn *websocket.Conn, sub *subscriber) {
	defer conn.Close()

	for event := range sub.send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}

// qrHandler renders a PNG QR code for a room's join URL.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")
	if code == "" {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:code/qr; strip trailing "/qr" to get the room URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// registerGame sets up the game routes:
//   - $prefix/ws              → the multiplexed game websocket
//   - $prefix/play/:code      → a shareable room landing page
//   - $prefix/play/:code/qr   → PNG QR code for that room URL
func registerGame(cfg *Config, d *Dispatcher, mux *httprouter.Router) {
	mux.GET(cfg.prefix+"/ws", serveWS(d))
	mux.GET(cfg.prefix+"/play/:code", servePlayPage(cfg, d.rooms))
	mux.GET(cfg.prefix+"/play/:code/qr", qrHandler)
}
