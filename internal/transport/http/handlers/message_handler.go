package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vedran77/liveboard/internal/domain"
	"go.uber.org/zap"
)

// BoardReader is the read side of the board service.
type BoardReader interface {
	Messages() []domain.Message
	Message(id string) (domain.Message, error)
	Presence() domain.Presence
}

type MessageHandler struct {
	board BoardReader
	log   *zap.Logger
}

func NewMessageHandler(board BoardReader, log *zap.Logger) *MessageHandler {
	return &MessageHandler{board: board, log: log}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.Messages())
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.board.Message(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
		} else {
			h.log.Error("get message", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, msg)
}
