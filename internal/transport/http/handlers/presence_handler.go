package handlers

import (
	"net/http"
)

type PresenceHandler struct {
	board BoardReader
}

func NewPresenceHandler(board BoardReader) *PresenceHandler {
	return &PresenceHandler{board: board}
}

func (h *PresenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.Presence())
}
