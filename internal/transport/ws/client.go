package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

const (
	writeWait             = 10 * time.Second
	pingInterval          = 30 * time.Second
	DefaultMaxMessageSize = 4096
	DefaultSendBufSize    = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string
	log  *zap.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, id string, sendBufSize int) *Client {
	if sendBufSize <= 0 {
		sendBufSize = DefaultSendBufSize
	}
	return &Client{
		hub:  hub,
		conn: conn,
		id:   id,
		log:  hub.log.With(zap.String("conn_id", id)),
		send: make(chan []byte, sendBufSize),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string {
	return c.id
}

// enqueue never blocks; false means the client's queue is full.
func (c *Client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close stops WritePump, which in turn closes the socket. send is never
// closed so late enqueues from ReadPump stay safe.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// ReadPump reads frames from the WebSocket and routes them to the Hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		typ, data, err := c.conn.Read(context.Background())
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				c.log.Info("ws: client closed connection")
			} else {
				c.log.Warn("ws: read error", zap.Error(err))
			}
			return
		}
		if typ != websocket.MessageText {
			c.log.Warn("ws: ignoring binary frame")
			continue
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			c.log.Warn("ws: malformed frame", zap.Error(err))
			continue
		}

		if event.Type == EventTypePing {
			c.sendPong()
			continue
		}
		c.hub.submit(c, &event)
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusGoingAway, "")
	}()

	for {
		select {
		case message := <-c.send:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.log.Warn("ws: write error", zap.Error(err))
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				c.log.Warn("ws: ping error", zap.Error(err))
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong, Timestamp: time.Now().Unix()})
	c.enqueue(data)
}
