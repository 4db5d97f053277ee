package service

import (
	"errors"

	"github.com/vedran77/liveboard/internal/domain"
	"github.com/vedran77/liveboard/internal/repository"
	"github.com/vedran77/liveboard/pkg/validator"
	"go.uber.org/zap"
)

// Command is an inbound client action. The set is closed: Join, AddMessage,
// EditMessage and DeleteMessage. Connect and Disconnect come from the
// transport itself and have their own methods.
type Command interface {
	command()
}

type Join struct {
	Username string
}

type AddMessage struct {
	Content string
	Author  string
}

type EditMessage struct {
	ID      string
	Content string
}

type DeleteMessage struct {
	ID string
}

func (Join) command()          {}
func (AddMessage) command()    {}
func (EditMessage) command()   {}
func (DeleteMessage) command() {}

type Delivery int

const (
	Unicast Delivery = iota
	Broadcast
)

func (d Delivery) String() string {
	if d == Unicast {
		return "unicast"
	}
	return "broadcast"
}

type EffectKind int

const (
	InitialData EffectKind = iota
	MessageAdded
	MessageUpdated
	MessageDeleted
	PresenceUpdated
)

// Effect is an outbound event the transport has to deliver. ConnID is only
// set for Unicast.
type Effect struct {
	Delivery Delivery
	ConnID   string
	Kind     EffectKind
	Payload  any
}

// BoardService turns client commands into store/registry mutations and the
// events that announce them. It is not safe for concurrent use: the hub
// calls it from a single goroutine, which is what orders all mutations.
type BoardService struct {
	messages repository.MessageRepository
	presence repository.PresenceRepository
	log      *zap.Logger
	strict   bool
}

func NewBoardService(
	messages repository.MessageRepository,
	presence repository.PresenceRepository,
	log *zap.Logger,
) *BoardService {
	return &BoardService{
		messages: messages,
		presence: presence,
		log:      log,
	}
}

// SetStrictContent makes AddMessage drop blank or oversized content instead
// of storing it verbatim.
func (s *BoardService) SetStrictContent(strict bool) {
	s.strict = strict
}

// Connect sends the current board to the new connection only.
func (s *BoardService) Connect(connID string) []Effect {
	return []Effect{{
		Delivery: Unicast,
		ConnID:   connID,
		Kind:     InitialData,
		Payload:  s.messages.Snapshot(),
	}}
}

// Disconnect clears the connection's presence entry. Connections that never
// joined produce no broadcast.
func (s *BoardService) Disconnect(connID string) []Effect {
	user, err := s.presence.Leave(connID)
	if errors.Is(err, domain.ErrNotPresent) {
		return nil
	}
	s.log.Info("user left", zap.String("username", user.Username), zap.String("conn_id", connID))
	return s.presenceEffects()
}

func (s *BoardService) Handle(connID string, cmd Command) []Effect {
	switch c := cmd.(type) {
	case Join:
		return s.join(connID, c)
	case AddMessage:
		return s.add(connID, c)
	case EditMessage:
		return s.edit(connID, c)
	case DeleteMessage:
		return s.delete(connID, c)
	default:
		return nil
	}
}

func (s *BoardService) join(connID string, c Join) []Effect {
	username := c.Username
	if username == "" {
		username = domain.AnonymousUsername
	}
	user := s.presence.Join(connID, username)
	s.log.Info("user joined", zap.String("username", user.Username), zap.String("conn_id", connID))
	return s.presenceEffects()
}

func (s *BoardService) add(connID string, c AddMessage) []Effect {
	if s.strict {
		if errs := validator.ValidateMessage(c.Content, c.Author); errs.HasErrors() {
			s.log.Debug("add rejected", zap.String("conn_id", connID), zap.Error(errs))
			return nil
		}
	}
	msg := s.messages.Add(c.Content, c.Author)
	return []Effect{{Delivery: Broadcast, Kind: MessageAdded, Payload: msg}}
}

func (s *BoardService) edit(connID string, c EditMessage) []Effect {
	msg, err := s.messages.Edit(c.ID, c.Content)
	if err != nil {
		s.log.Debug("edit ignored", zap.String("conn_id", connID), zap.String("message_id", c.ID), zap.Error(err))
		return nil
	}
	return []Effect{{Delivery: Broadcast, Kind: MessageUpdated, Payload: msg}}
}

func (s *BoardService) delete(connID string, c DeleteMessage) []Effect {
	id, err := s.messages.Delete(c.ID)
	if err != nil {
		s.log.Debug("delete ignored", zap.String("conn_id", connID), zap.String("message_id", c.ID), zap.Error(err))
		return nil
	}
	return []Effect{{Delivery: Broadcast, Kind: MessageDeleted, Payload: domain.DeletedMessage{ID: id}}}
}

func (s *BoardService) presenceEffects() []Effect {
	return []Effect{{Delivery: Broadcast, Kind: PresenceUpdated, Payload: s.presence.Snapshot()}}
}

// Read-only accessors. The repositories guard their own state, so these
// may be called from HTTP handlers outside the hub goroutine.

func (s *BoardService) Messages() []domain.Message {
	return s.messages.Snapshot()
}

func (s *BoardService) Message(id string) (domain.Message, error) {
	return s.messages.Get(id)
}

func (s *BoardService) Presence() domain.Presence {
	return s.presence.Snapshot()
}
