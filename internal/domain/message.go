package domain

import (
	"time"
)

// Message is one entry on the board. CreatedAt is refreshed on every edit.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    string    `json:"author"`
}

// DeletedMessage is the notice sent when a message is removed.
type DeletedMessage struct {
	ID string `json:"id"`
}
