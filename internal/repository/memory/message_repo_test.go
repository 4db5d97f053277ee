package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vedran77/liveboard/internal/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestNewMessageRepo_Seeded(t *testing.T) {
	repo := NewMessageRepo()

	msgs := repo.Snapshot()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		require.Equal(t, "System", m.Author)
		require.NotEmpty(t, m.ID)
		require.NotEmpty(t, m.Content)
	}
	require.NotEqual(t, msgs[0].ID, msgs[1].ID)
	require.Equal(t, welcomeMessages[0], msgs[0].Content)
	require.Contains(t, msgs[0].Content, "using Socket.IO")
	require.Equal(t, welcomeMessages[1], msgs[1].Content)
}

func TestNewMessageRepo_WithoutSeed(t *testing.T) {
	repo := NewMessageRepo(WithoutSeed())
	require.Zero(t, repo.Len())
	require.Empty(t, repo.Snapshot())
}

func TestMessageRepo_AddAcceptsEmptyFields(t *testing.T) {
	repo := NewMessageRepo(WithoutSeed())

	msg := repo.Add("", "")
	require.NotEmpty(t, msg.ID)
	require.Equal(t, "", msg.Content)
	require.Equal(t, "", msg.Author)
	require.Equal(t, 1, repo.Len())
}

func TestMessageRepo_EditKeepsIDAndAuthor(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := NewMessageRepo(WithoutSeed(), WithClock(clock.Now))

	added := repo.Add("hi", "alice")
	edited, err := repo.Edit(added.ID, "hello")
	require.NoError(t, err)

	require.Equal(t, added.ID, edited.ID)
	require.Equal(t, "alice", edited.Author)
	require.Equal(t, "hello", edited.Content)
	require.True(t, edited.CreatedAt.After(added.CreatedAt))

	got, err := repo.Get(added.ID)
	require.NoError(t, err)
	require.Equal(t, edited, got)
}

func TestMessageRepo_UnknownIDLeavesStoreUntouched(t *testing.T) {
	repo := NewMessageRepo()
	before := repo.Snapshot()

	_, err := repo.Edit("missing", "x")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Delete("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Get("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.Equal(t, before, repo.Snapshot())
}

func TestMessageRepo_DeletePreservesOrder(t *testing.T) {
	repo := NewMessageRepo(WithoutSeed(), WithIDGenerator(sequentialIDs()))
	repo.Add("a", "x")
	repo.Add("b", "x")
	repo.Add("c", "x")

	id, err := repo.Delete("id-2")
	require.NoError(t, err)
	require.Equal(t, "id-2", id)

	msgs := repo.Snapshot()
	require.Len(t, msgs, 2)
	require.Equal(t, "a", msgs[0].Content)
	require.Equal(t, "c", msgs[1].Content)
}

func TestMessageRepo_IDsAreNeverReused(t *testing.T) {
	repo := NewMessageRepo()
	seen := make(map[string]struct{})
	for _, m := range repo.Snapshot() {
		seen[m.ID] = struct{}{}
	}
	for i := 0; i < 50; i++ {
		m := repo.Add("x", "y")
		_, dup := seen[m.ID]
		require.False(t, dup)
		seen[m.ID] = struct{}{}
		if i%2 == 0 {
			_, err := repo.Delete(m.ID)
			require.NoError(t, err)
		}
	}
}

func TestMessageRepo_SnapshotIsACopy(t *testing.T) {
	repo := NewMessageRepo()
	snap := repo.Snapshot()
	snap[0].Content = "mutated"

	require.NotEqual(t, "mutated", repo.Snapshot()[0].Content)
}
