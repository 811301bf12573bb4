package roster

import (
	"context"
	"sync"
	"testing"

	"Recluta/models/recruit"
	redis_models "Recluta/models/redis"
	"Recluta/services/platform"
	"Recluta/services/store"
	"Recluta/services/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *store.MemoryStore) {
	t.Helper()
	ms := store.NewMemoryStore(0)
	w := worker.New(16, 2)
	t.Cleanup(w.Shutdown)
	return NewEngine(ms, w, platform.LogMessenger{}, nil), ms
}

func publishTestPanel(t *testing.T, e *Engine, capacity recruit.Capacity) *redis_models.Roster {
	t.Helper()
	published, err := e.Publish(context.Background(), &redis_models.Roster{
		Creator:  "alice",
		Server:   recruit.ServerTokyo,
		Mode:     recruit.ModeUnrated,
		Rank:     recruit.RankNone,
		Capacity: capacity,
		Joined:   []string{"alice"},
	})
	require.NoError(t, err)
	return published
}

func TestPublishAssignsPanelIDAndSeedsCreator(t *testing.T) {
	e, _ := newTestEngine(t)

	published, err := e.Publish(context.Background(), &redis_models.Roster{
		Creator:  "alice",
		Server:   recruit.ServerSydney,
		Mode:     recruit.ModeCustom,
		Rank:     recruit.RankNone,
		Capacity: recruit.CapacitySix,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, published.PanelID)
	assert.Equal(t, []string{"alice"}, published.Joined)
}

func TestJoinIsIdempotentFromCallerView(t *testing.T) {
	e, _ := newTestEngine(t)
	panel := publishTestPanel(t, e, recruit.CapacityTrio)
	ctx := context.Background()

	first, err := e.Join(ctx, panel.PanelID, "bob")
	require.NoError(t, err)
	assert.Equal(t, JoinStatusJoined, first.Status)
	assert.False(t, first.IsFull)

	second, err := e.Join(ctx, panel.PanelID, "bob")
	require.NoError(t, err)
	assert.Equal(t, JoinStatusAlreadyJoined, second.Status)

	snapshot, err := e.Get(ctx, panel.PanelID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, snapshot.Joined)
}

func TestJoinReportsFullExactlyAtCapacity(t *testing.T) {
	e, _ := newTestEngine(t)
	panel := publishTestPanel(t, e, recruit.CapacityTrio)
	ctx := context.Background()

	result, err := e.Join(ctx, panel.PanelID, "bob")
	require.NoError(t, err)
	assert.False(t, result.IsFull)

	result, err = e.Join(ctx, panel.PanelID, "carol")
	require.NoError(t, err)
	assert.Equal(t, JoinStatusJoined, result.Status)
	assert.True(t, result.IsFull)

	// Capacity reached: further joins are refused, never admitted past it.
	result, err = e.Join(ctx, panel.PanelID, "dave")
	require.NoError(t, err)
	assert.Equal(t, JoinStatusFull, result.Status)
	assert.True(t, result.IsFull)

	snapshot, err := e.Get(ctx, panel.PanelID)
	require.NoError(t, err)
	assert.Len(t, snapshot.Joined, 3)

	// A leave reopens the panel.
	status, err := e.Leave(ctx, panel.PanelID, "bob")
	require.NoError(t, err)
	assert.Equal(t, LeaveStatusLeft, status)

	result, err = e.Join(ctx, panel.PanelID, "dave")
	require.NoError(t, err)
	assert.Equal(t, JoinStatusJoined, result.Status)
	assert.True(t, result.IsFull)
}

func TestConcurrentJoinsForLastSlot(t *testing.T) {
	e, _ := newTestEngine(t)
	panel := publishTestPanel(t, e, recruit.CapacityDuo)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]JoinResult, 2)
	for i, user := range []string{"bob", "carol"} {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			r, err := e.Join(ctx, panel.PanelID, u)
			assert.NoError(t, err)
			results[idx] = r
		}(i, user)
	}
	wg.Wait()

	joined, full := 0, 0
	for _, r := range results {
		switch r.Status {
		case JoinStatusJoined:
			joined++
			assert.True(t, r.IsFull)
		case JoinStatusFull:
			full++
		}
	}
	assert.Equal(t, 1, joined, "exactly one racer gets the last slot")
	assert.Equal(t, 1, full)

	snapshot, err := e.Get(ctx, panel.PanelID)
	require.NoError(t, err)
	assert.Len(t, snapshot.Joined, 2)
}

func TestCapacityNeverExceededUnderConcurrency(t *testing.T) {
	e, _ := newTestEngine(t)
	panel := publishTestPanel(t, e, recruit.CapacityFullParty)
	ctx := context.Background()

	users := []string{"b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			_, err := e.Join(ctx, panel.PanelID, user)
			assert.NoError(t, err)
		}(u)
	}
	wg.Wait()

	snapshot, err := e.Get(ctx, panel.PanelID)
	require.NoError(t, err)
	assert.Len(t, snapshot.Joined, 5)
}

func TestCreatorCannotLeave(t *testing.T) {
	e, _ := newTestEngine(t)
	panel := publishTestPanel(t, e, recruit.CapacityDuo)
	ctx := context.Background()

	status, err := e.Leave(ctx, panel.PanelID, "alice")
	require.NoError(t, err)
	assert.Equal(t, LeaveStatusCreatorLeave, status)

	snapshot, err := e.Get(ctx, panel.PanelID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, snapshot.Joined)
}

func TestLeaveNotJoined(t *testing.T) {
	e, _ := newTestEngine(t)
	panel := publishTestPanel(t, e, recruit.CapacityDuo)

	status, err := e.Leave(context.Background(), panel.PanelID, "stranger")
	require.NoError(t, err)
	assert.Equal(t, LeaveStatusNotJoined, status)
}

func TestDeleteOnlyByCreator(t *testing.T) {
	e, _ := newTestEngine(t)
	panel := publishTestPanel(t, e, recruit.CapacityDuo)
	ctx := context.Background()

	status, err := e.Delete(ctx, panel.PanelID, "bob")
	require.NoError(t, err)
	assert.Equal(t, DeleteStatusNotCreator, status)

	// Refused deletion leaves the panel retrievable.
	_, err = e.Get(ctx, panel.PanelID)
	require.NoError(t, err)

	status, err = e.Delete(ctx, panel.PanelID, "alice")
	require.NoError(t, err)
	assert.Equal(t, DeleteStatusDeleted, status)

	_, err = e.Get(ctx, panel.PanelID)
	assert.ErrorIs(t, err, ErrPanelExpired)
}

func TestDeleteGuardsStaleCreatorMembership(t *testing.T) {
	e, ms := newTestEngine(t)
	panel := publishTestPanel(t, e, recruit.CapacityDuo)
	ctx := context.Background()

	// Corrupt the record so the creator is no longer on the roster.
	require.NoError(t, ms.UpdateJoined(ctx, panel.PanelID, func(r *redis_models.Roster) ([]string, error) {
		return []string{"bob"}, nil
	}))

	status, err := e.Delete(ctx, panel.PanelID, "alice")
	require.NoError(t, err)
	assert.Equal(t, DeleteStatusNotJoined, status)
}

func TestExpiredPanelOutcomes(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Join(ctx, "ghost", "bob")
	assert.ErrorIs(t, err, ErrPanelExpired)

	_, err = e.Leave(ctx, "ghost", "bob")
	assert.ErrorIs(t, err, ErrPanelExpired)

	_, err = e.Delete(ctx, "ghost", "bob")
	assert.ErrorIs(t, err, ErrPanelExpired)

	_, err = e.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrPanelExpired)
}
