package domain

import (
	"time"
)

const AnonymousUsername = "Anonymous"

// OnlineUser is a presence entry. ID is the connection id, so a person with
// two open tabs shows up twice.
type OnlineUser struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	ConnectedAt time.Time `json:"connectedAt"`
}

type Presence struct {
	Count int          `json:"count"`
	Users []OnlineUser `json:"users"`
}
