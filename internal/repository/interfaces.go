package repository

import (
	"github.com/vedran77/liveboard/internal/domain"
)

// MessageRepository holds the board's messages in insertion order.
type MessageRepository interface {
	Snapshot() []domain.Message
	Get(id string) (domain.Message, error)
	Len() int
	Add(content, author string) domain.Message
	Edit(id, content string) (domain.Message, error)
	Delete(id string) (string, error)
}

// PresenceRepository tracks which connections have joined and under what name.
type PresenceRepository interface {
	Join(connID, username string) domain.OnlineUser
	Leave(connID string) (domain.OnlineUser, error)
	Snapshot() domain.Presence
}
