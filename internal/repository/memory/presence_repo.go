package memory

import (
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/vedran77/liveboard/internal/domain"
)

// PresenceRepo keeps one entry per joined connection, listed in first-join order.
type PresenceRepo struct {
	mu    sync.RWMutex
	users map[string]domain.OnlineUser
	order []string
	now   func() time.Time
}

// PresenceOption configures a PresenceRepo. Only the clock is adjustable.
type PresenceOption func(*PresenceRepo)

func WithPresenceClock(now func() time.Time) PresenceOption {
	return func(r *PresenceRepo) { r.now = now }
}

func NewPresenceRepo(opts ...PresenceOption) *PresenceRepo {
	r := &PresenceRepo{
		users: make(map[string]domain.OnlineUser),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Join creates or overwrites the entry for connID. A rejoin keeps its
// position in the listing but resets username and connectedAt.
func (r *PresenceRepo) Join(connID, username string) domain.OnlineUser {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[connID]; !ok {
		r.order = append(r.order, connID)
	}
	user := domain.OnlineUser{
		ID:          connID,
		Username:    username,
		ConnectedAt: r.now().UTC(),
	}
	r.users[connID] = user
	return user
}

func (r *PresenceRepo) Leave(connID string) (domain.OnlineUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[connID]
	if !ok {
		return domain.OnlineUser{}, domain.ErrNotPresent
	}
	delete(r.users, connID)
	r.order = lo.Without(r.order, connID)
	return user, nil
}

func (r *PresenceRepo) Snapshot() domain.Presence {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := lo.Map(r.order, func(id string, _ int) domain.OnlineUser {
		return r.users[id]
	})
	return domain.Presence{Count: len(users), Users: users}
}
