package domain

import "errors"

var (
	ErrNotFound   = errors.New("message not found")
	ErrNotPresent = errors.New("connection has not joined")
)
