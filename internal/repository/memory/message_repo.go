package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/vedran77/liveboard/internal/domain"
)

const systemAuthor = "System"

var welcomeMessages = []string{
	"This is a real-time data showcase using Socket.IO. Changes made on the management page will instantly appear here.",
	"Add, edit, or delete items below and see them update in real-time across all connected clients.",
}

// Option configures a MessageRepo at construction time.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
	seed  bool
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the uuid-based id source.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithoutSeed starts the store empty instead of with the welcome messages.
func WithoutSeed() Option {
	return func(o *options) { o.seed = false }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.NewString,
		seed:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type MessageRepo struct {
	mu       sync.RWMutex
	messages []domain.Message
	now      func() time.Time
	newID    func() string
}

func NewMessageRepo(opts ...Option) *MessageRepo {
	o := buildOptions(opts)
	r := &MessageRepo{
		messages: make([]domain.Message, 0, len(welcomeMessages)),
		now:      o.now,
		newID:    o.newID,
	}
	if o.seed {
		for _, content := range welcomeMessages {
			r.messages = append(r.messages, r.newMessage(content, systemAuthor))
		}
	}
	return r
}

func (r *MessageRepo) newMessage(content, author string) domain.Message {
	return domain.Message{
		ID:        r.newID(),
		Content:   content,
		CreatedAt: r.now().UTC(),
		Author:    author,
	}
}

// Snapshot returns a copy of all messages in insertion order.
func (r *MessageRepo) Snapshot() []domain.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.messages)
}

func (r *MessageRepo) Get(id string) (domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msg, _, ok := r.find(id)
	if !ok {
		return domain.Message{}, domain.ErrNotFound
	}
	return msg, nil
}

func (r *MessageRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}

// Add appends a message. Content and author are stored verbatim.
func (r *MessageRepo) Add(content, author string) domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := r.newMessage(content, author)
	r.messages = append(r.messages, msg)
	return msg
}

// Edit replaces content and timestamp in place; id and author are kept.
func (r *MessageRepo) Edit(id, content string) (domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, idx, ok := r.find(id)
	if !ok {
		return domain.Message{}, domain.ErrNotFound
	}
	r.messages[idx].Content = content
	r.messages[idx].CreatedAt = r.now().UTC()
	return r.messages[idx], nil
}

func (r *MessageRepo) Delete(id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, idx, ok := r.find(id)
	if !ok {
		return "", domain.ErrNotFound
	}
	r.messages = slices.Delete(r.messages, idx, idx+1)
	return msg.ID, nil
}

// find must be called with mu held.
func (r *MessageRepo) find(id string) (domain.Message, int, bool) {
	return lo.FindIndexOf(r.messages, func(m domain.Message) bool {
		return m.ID == id
	})
}
