package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vedran77/liveboard/internal/domain"
	"github.com/vedran77/liveboard/internal/service"
)

func TestEvent_Command(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		want    service.Command
		handled bool
	}{
		{
			name:    "join",
			event:   Event{Type: EventTypeUserJoin, Payload: json.RawMessage(`{"username":"bob"}`)},
			want:    service.Join{Username: "bob"},
			handled: true,
		},
		{
			name:    "join without payload",
			event:   Event{Type: EventTypeUserJoin},
			want:    service.Join{},
			handled: true,
		},
		{
			name:    "join with numeric username",
			event:   Event{Type: EventTypeUserJoin, Payload: json.RawMessage(`{"username":123}`)},
			want:    service.Join{},
			handled: true,
		},
		{
			name:    "add with wrong field types",
			event:   Event{Type: EventTypeAddItem, Payload: json.RawMessage(`{"content":42,"author":null}`)},
			want:    service.AddMessage{},
			handled: true,
		},
		{
			name:    "add",
			event:   Event{Type: EventTypeAddItem, Payload: json.RawMessage(`{"content":"hi","author":"alice"}`)},
			want:    service.AddMessage{Content: "hi", Author: "alice"},
			handled: true,
		},
		{
			name:    "edit",
			event:   Event{Type: EventTypeEditItem, Payload: json.RawMessage(`{"id":"x","content":"hello"}`)},
			want:    service.EditMessage{ID: "x", Content: "hello"},
			handled: true,
		},
		{
			name:    "delete with array payload",
			event:   Event{Type: EventTypeDeleteItem, Payload: json.RawMessage(`["x"]`)},
			want:    service.DeleteMessage{},
			handled: true,
		},
		{
			name:  "unknown",
			event: Event{Type: "shout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := tt.event.Command()
			require.Equal(t, tt.handled, ok)
			require.Equal(t, tt.want, cmd)
		})
	}
}

func TestEventFromEffect_DeletedCarriesOnlyID(t *testing.T) {
	evt, err := eventFromEffect(service.Effect{
		Delivery: service.Broadcast,
		Kind:     service.MessageDeleted,
		Payload:  domain.DeletedMessage{ID: "abc"},
	})
	require.NoError(t, err)
	require.Equal(t, EventTypeItemDeleted, evt.Type)
	require.JSONEq(t, `{"id":"abc"}`, string(evt.Payload))
}
