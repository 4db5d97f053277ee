package ws

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

type HandlerConfig struct {
	SendBufSize    int
	MaxMessageSize int64
}

// ServeWS returns an HTTP handler that upgrades to WebSocket. Connections
// are anonymous; each gets a fresh id that doubles as its presence key.
func ServeWS(hub *Hub, cfg HandlerConfig) http.HandlerFunc {
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = DefaultMaxMessageSize
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // any origin, like the board's CORS policy
		})
		if err != nil {
			hub.log.Warn("ws: accept error", zap.Error(err))
			return
		}
		conn.SetReadLimit(cfg.MaxMessageSize)

		client := NewClient(hub, conn, uuid.NewString(), cfg.SendBufSize)
		if !hub.Register(client) {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
