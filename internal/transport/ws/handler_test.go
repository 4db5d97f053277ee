package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vedran77/liveboard/internal/domain"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var evt Event
	require.NoError(t, wsjson.Read(ctx, conn, &evt))
	return evt
}

func write(t *testing.T, conn *websocket.Conn, eventType string, payload any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	evt, err := NewEvent(eventType, payload)
	require.NoError(t, err)
	require.NoError(t, wsjson.Write(ctx, conn, evt))
}

func TestServeWS_EndToEnd(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(ServeWS(hub, HandlerConfig{}))
	defer srv.Close()

	alice := dial(t, srv)
	initial := read(t, alice)
	require.Equal(t, EventTypeInitialData, initial.Type)
	require.Len(t, decode[[]domain.Message](t, initial), 2)

	bob := dial(t, srv)
	require.Equal(t, EventTypeInitialData, read(t, bob).Type)

	write(t, alice, EventTypeAddItem, map[string]string{"content": "hi", "author": "alice"})
	var added domain.Message
	for _, conn := range []*websocket.Conn{alice, bob} {
		evt := read(t, conn)
		require.Equal(t, EventTypeItemAdded, evt.Type)
		added = decode[domain.Message](t, evt)
		require.Equal(t, "hi", added.Content)
		require.Equal(t, "alice", added.Author)
	}

	write(t, bob, EventTypeEditItem, map[string]string{"id": added.ID, "content": "hello"})
	for _, conn := range []*websocket.Conn{alice, bob} {
		evt := read(t, conn)
		require.Equal(t, EventTypeItemUpdated, evt.Type)
		updated := decode[domain.Message](t, evt)
		require.Equal(t, added.ID, updated.ID)
		require.Equal(t, "hello", updated.Content)
	}

	write(t, alice, EventTypeDeleteItem, map[string]string{"id": added.ID})
	for _, conn := range []*websocket.Conn{alice, bob} {
		evt := read(t, conn)
		require.Equal(t, EventTypeItemDeleted, evt.Type)
		require.JSONEq(t, `{"id":"`+added.ID+`"}`, string(evt.Payload))
	}

	write(t, bob, EventTypeUserJoin, map[string]string{"username": "bob"})
	for _, conn := range []*websocket.Conn{alice, bob} {
		evt := read(t, conn)
		require.Equal(t, EventTypeUsersUpdated, evt.Type)
		require.Equal(t, 1, decode[domain.Presence](t, evt).Count)
	}

	bob.Close(websocket.StatusNormalClosure, "bye")
	evt := read(t, alice)
	require.Equal(t, EventTypeUsersUpdated, evt.Type)
	require.Equal(t, 0, decode[domain.Presence](t, evt).Count)
}

func TestServeWS_PingPongAndMalformedFrames(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(ServeWS(hub, HandlerConfig{}))
	defer srv.Close()

	conn := dial(t, srv)
	read(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("not json")))

	write(t, conn, EventTypePing, nil)
	require.Equal(t, EventTypePong, read(t, conn).Type)
}

func TestServeWS_LeavingWithoutJoinIsSilent(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(ServeWS(hub, HandlerConfig{}))
	defer srv.Close()

	watcher := dial(t, srv)
	read(t, watcher)

	lurker := dial(t, srv)
	read(t, lurker)
	lurker.Close(websocket.StatusNormalClosure, "")

	write(t, watcher, EventTypeAddItem, map[string]string{"content": "marker"})
	require.Equal(t, EventTypeItemAdded, read(t, watcher).Type)
}
