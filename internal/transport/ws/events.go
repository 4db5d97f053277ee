package ws

import (
	"encoding/json"
	"time"

	"github.com/vedran77/liveboard/internal/service"
)

// Event types - Client → Server
const (
	EventTypeUserJoin   = "user_join"
	EventTypeAddItem    = "add_item"
	EventTypeEditItem   = "edit_item"
	EventTypeDeleteItem = "delete_item"
	EventTypePing       = "ping"
)

// Event types - Server → Client
const (
	EventTypeInitialData  = "initial_data"
	EventTypeUsersUpdated = "users_updated"
	EventTypeItemAdded    = "item_added"
	EventTypeItemUpdated  = "item_updated"
	EventTypeItemDeleted  = "item_deleted"
	EventTypePong         = "pong"
)

// Event is the envelope for every frame in both directions.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}

var effectTypes = map[service.EffectKind]string{
	service.InitialData:     EventTypeInitialData,
	service.MessageAdded:    EventTypeItemAdded,
	service.MessageUpdated:  EventTypeItemUpdated,
	service.MessageDeleted:  EventTypeItemDeleted,
	service.PresenceUpdated: EventTypeUsersUpdated,
}

func eventFromEffect(eff service.Effect) (*Event, error) {
	return NewEvent(effectTypes[eff.Kind], eff.Payload)
}

// Command maps an inbound event onto a board command. Payload fields are
// untrusted: anything missing or not a string reads as "". ok is false for
// event types the board does not handle.
func (e *Event) Command() (cmd service.Command, ok bool) {
	f := parseFields(e.Payload)
	switch e.Type {
	case EventTypeUserJoin:
		return service.Join{Username: f.str("username")}, true
	case EventTypeAddItem:
		return service.AddMessage{Content: f.str("content"), Author: f.str("author")}, true
	case EventTypeEditItem:
		return service.EditMessage{ID: f.str("id"), Content: f.str("content")}, true
	case EventTypeDeleteItem:
		return service.DeleteMessage{ID: f.str("id")}, true
	default:
		return nil, false
	}
}

type payloadFields map[string]json.RawMessage

func parseFields(raw json.RawMessage) payloadFields {
	var f payloadFields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return f
}

func (f payloadFields) str(key string) string {
	raw, ok := f[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
