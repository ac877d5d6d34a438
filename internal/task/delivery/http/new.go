package http

import (
	"context"

	"vision/internal/live"
	"vision/internal/task"
	"vision/pkg/log"

	"github.com/gorilla/websocket"
)

// Streamer hands out live snapshots of the visible task list.
type Streamer interface {
	Subscribe(ctx context.Context) (<-chan live.Snapshot, func())
}

type handler struct {
	l        log.Logger
	uc       task.UseCase
	streamer Streamer
	upgrader websocket.Upgrader
}

// New creates a new HTTP handler for the task domain.
// allowedOrigins gates the websocket handshake; an empty list allows any origin.
func New(l log.Logger, uc task.UseCase, streamer Streamer, allowedOrigins []string) *handler {
	return &handler{
		l:        l,
		uc:       uc,
		streamer: streamer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}
