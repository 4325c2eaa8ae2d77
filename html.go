/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}

func serveHomePage(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, _ = w.Write([]byte(newPage("emojiparty", "emojiparty: connect a client to /ws to play")))
	}
}

// servePlayPage is the shareable landing page for one room, the target of
// the QR code.
func servePlayPage(cfg *Config, rooms *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := ps.ByName("code")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		if _, err := rooms.Get(code); err != nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(newPage("Not Found", "Room "+code+" does not exist.")))
			return
		}

		_, _ = w.Write([]byte(newPage("emojiparty", "Join room "+code+" from a connected client.")))
	}
}

func serveHealthCheck(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		if _, err := w.Write([]byte("Ok\n")); err != nil {
			log.Error().Err(err).Msg("healthcheck write failed")
		}
	}
}

func serveRobots(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: Amazonbot
Disallow: /

User-agent: Applebot-Extended
Disallow: /

User-agent: Bytespider
Disallow: /

User-agent: CCBot
Disallow: /

User-agent: ClaudeBot
Disallow: /

User-agent: Google-Extended
Disallow: /

User-agent: GPTBot
Disallow: /

User-agent: meta-externalagent
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		if _, err := w.Write([]byte(data)); err != nil {
			log.Error().Err(err).Msg("robots write failed")
		}
	}
}
