package organizer

import (
	"context"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaiwenlu/llamadeck/gateway"
)

// fakeGateway is an in-memory backend recording every mutating call.
type fakeGateway struct {
	groups   []*gateway.Group
	sessions []*gateway.Session
	calls    []string
	nextID   int64

	failListSessions bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{nextID: 100}
}

func (f *fakeGateway) ListGroups(ctx context.Context) ([]*gateway.Group, error) {
	out := make([]*gateway.Group, len(f.groups))
	copy(out, f.groups)
	return out, nil
}

func (f *fakeGateway) ListSessions(ctx context.Context) ([]*gateway.Session, error) {
	if f.failListSessions {
		return nil, errors.New("backend unavailable")
	}
	out := make([]*gateway.Session, len(f.sessions))
	copy(out, f.sessions)
	return out, nil
}

func (f *fakeGateway) CreateGroup(ctx context.Context, name string) (*gateway.Group, error) {
	f.calls = append(f.calls, "CreateGroup")
	f.nextID++
	group := &gateway.Group{ID: f.nextID, Name: name}
	f.groups = append(f.groups, group)
	return group, nil
}

func (f *fakeGateway) RenameGroup(ctx context.Context, id int64, name string) (*gateway.Group, error) {
	f.calls = append(f.calls, "RenameGroup")
	for _, group := range f.groups {
		if group.ID == id {
			group.Name = name
			return group, nil
		}
	}
	return nil, errors.New("group not found")
}

func (f *fakeGateway) DeleteGroup(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "DeleteGroup")
	for i, group := range f.groups {
		if group.ID == id {
			f.groups = append(f.groups[:i], f.groups[i+1:]...)
			break
		}
	}
	// The backend reassigns orphaned sessions to uncategorized.
	for _, session := range f.sessions {
		if session.GroupID != nil && *session.GroupID == id {
			session.GroupID = nil
		}
	}
	return nil
}

func (f *fakeGateway) CreateSession(ctx context.Context, title string, bucket gateway.Bucket) (*gateway.Session, error) {
	f.calls = append(f.calls, "CreateSession")
	f.nextID++
	session := &gateway.Session{ID: f.nextID, Title: title}
	if id, ok := bucket.GroupID(); ok {
		session.GroupID = &id
	}
	f.sessions = append(f.sessions, session)
	return session, nil
}

func (f *fakeGateway) RenameSession(ctx context.Context, id int64, title string) (*gateway.Session, error) {
	f.calls = append(f.calls, "RenameSession")
	for _, session := range f.sessions {
		if session.ID == id {
			session.Title = title
			return session, nil
		}
	}
	return nil, errors.New("session not found")
}

func (f *fakeGateway) MoveSession(ctx context.Context, id int64, bucket gateway.Bucket, order int) (*gateway.Session, error) {
	f.calls = append(f.calls, "MoveSession")
	for _, session := range f.sessions {
		if session.ID == id {
			session.GroupID = nil
			if groupID, ok := bucket.GroupID(); ok {
				session.GroupID = &groupID
			}
			session.Order = order
			return session, nil
		}
	}
	return nil, errors.New("session not found")
}

func (f *fakeGateway) DeleteSession(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "DeleteSession")
	for i, session := range f.sessions {
		if session.ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			break
		}
	}
	return nil
}

func acceptAll(string) bool  { return true }
func declineAll(string) bool { return false }

func newTestOrganizer(t *testing.T, fake *fakeGateway, confirm func(string) bool) *Organizer {
	t.Helper()
	o := New(fake, ConfirmerFunc(confirm), slog.New(slog.DiscardHandler))
	require.NoError(t, o.Refresh(context.Background()))
	return o
}

func TestRefreshAtomicity(t *testing.T) {
	fake := newFakeGateway()
	fake.groups = []*gateway.Group{{ID: 1, Name: "work"}}
	fake.sessions = []*gateway.Session{{ID: 2, Title: "chat"}}
	o := newTestOrganizer(t, fake, acceptAll)

	// Sessions fetch fails: both halves of the cache must stay untouched,
	// even though the groups fetch would have succeeded with new data.
	fake.groups = append(fake.groups, &gateway.Group{ID: 3, Name: "play"})
	fake.failListSessions = true
	err := o.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, o.Groups(), 1)
	require.Len(t, o.Sessions(), 1)
	assert.Equal(t, int64(2), o.Sessions()[0].ID)
}

func TestRenameSessionNoOp(t *testing.T) {
	fake := newFakeGateway()
	fake.sessions = []*gateway.Session{{ID: 1, Title: "Research"}}
	o := newTestOrganizer(t, fake, acceptAll)

	require.NoError(t, o.RenameSession(context.Background(), 1, "  Research  "))
	require.NoError(t, o.RenameSession(context.Background(), 1, "   "))
	assert.Empty(t, fake.calls, "no-op renames must not reach the gateway")

	require.NoError(t, o.RenameSession(context.Background(), 1, "Notes"))
	assert.Equal(t, []string{"RenameSession"}, fake.calls)
	assert.Equal(t, "Notes", o.Session(1).Title)
}

func TestRenameGroupNoOp(t *testing.T) {
	fake := newFakeGateway()
	fake.groups = []*gateway.Group{{ID: 1, Name: "work"}}
	o := newTestOrganizer(t, fake, acceptAll)

	require.NoError(t, o.RenameGroup(context.Background(), 1, "work"))
	assert.Empty(t, fake.calls)
}

func TestDeleteSessionDeclined(t *testing.T) {
	fake := newFakeGateway()
	fake.sessions = []*gateway.Session{{ID: 1, Title: "keep me"}}
	o := newTestOrganizer(t, fake, declineAll)

	_, err := o.DeleteSession(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Empty(t, fake.calls)
	assert.Len(t, o.Sessions(), 1)
}

func TestDeleteActiveSessionWithSiblings(t *testing.T) {
	fake := newFakeGateway()
	fake.sessions = []*gateway.Session{
		{ID: 1, Title: "active", Order: 0},
		{ID: 2, Title: "other", Order: 1},
	}
	o := newTestOrganizer(t, fake, acceptAll)

	next, err := o.DeleteSession(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, int64(2), next.ID)
}

func TestDeleteActiveSessionWithoutSiblings(t *testing.T) {
	fake := newFakeGateway()
	fake.sessions = []*gateway.Session{{ID: 1, Title: "last one"}}
	o := newTestOrganizer(t, fake, acceptAll)

	next, err := o.DeleteSession(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.NotEqual(t, int64(1), next.ID)
	assert.Equal(t, DefaultSessionTitle, next.Title)
	assert.Equal(t, []string{"DeleteSession", "CreateSession"}, fake.calls)
}

func TestDeleteInactiveSession(t *testing.T) {
	fake := newFakeGateway()
	fake.sessions = []*gateway.Session{
		{ID: 1, Title: "active"},
		{ID: 2, Title: "doomed"},
	}
	o := newTestOrganizer(t, fake, acceptAll)

	next, err := o.DeleteSession(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Nil(t, next, "deleting an inactive session must not change activation")
}

func TestDeleteGroupReassignsToUncategorized(t *testing.T) {
	fake := newFakeGateway()
	fake.groups = []*gateway.Group{{ID: 1, Name: "work"}}
	fake.sessions = []*gateway.Session{{ID: 2, Title: "chat", GroupID: groupID(1)}}
	o := newTestOrganizer(t, fake, acceptAll)

	require.NoError(t, o.DeleteGroup(context.Background(), 1))
	assert.Empty(t, o.Groups())
	require.Len(t, o.SessionsIn(gateway.Uncategorized), 1)
}

func TestMoveSessionPersistsPlacement(t *testing.T) {
	fake := newFakeGateway()
	fake.groups = []*gateway.Group{{ID: 1, Name: "work"}}
	fake.sessions = []*gateway.Session{
		{ID: 2, Title: "target", GroupID: groupID(1), Order: 5},
		{ID: 3, Title: "dragged", Order: 0},
	}
	o := newTestOrganizer(t, fake, acceptAll)

	err := o.MoveSession(context.Background(), 3, Drop{
		Bucket:    gateway.GroupBucket(1),
		SessionID: 2,
		Position:  PositionBottom,
	})
	require.NoError(t, err)
	moved := o.Session(3)
	assert.True(t, gateway.GroupBucket(1).Contains(moved))
	assert.Equal(t, 6, moved.Order)
}

func TestDragLifecycle(t *testing.T) {
	fake := newFakeGateway()
	fake.groups = []*gateway.Group{{ID: 1, Name: "work"}}
	fake.sessions = []*gateway.Session{
		{ID: 2, Title: "target", GroupID: groupID(1), Order: 1},
		{ID: 3, Title: "dragged", Order: 0},
	}
	o := newTestOrganizer(t, fake, acceptAll)

	o.StartDrag(3)
	o.HoverOver(Drop{Bucket: gateway.GroupBucket(1), SessionID: 2, Position: PositionTop})
	// Hover is recomputed on every pointer event; the last one wins.
	o.HoverOver(Drop{Bucket: gateway.GroupBucket(1), SessionID: 2, Position: PositionBottom})
	require.NoError(t, o.FinishDrag(context.Background()))
	assert.Nil(t, o.Drag())
	assert.Equal(t, 2, o.Session(3).Order)
}

func TestCancelDrag(t *testing.T) {
	fake := newFakeGateway()
	fake.sessions = []*gateway.Session{{ID: 1, Title: "chat"}}
	o := newTestOrganizer(t, fake, acceptAll)

	o.StartDrag(1)
	o.CancelDrag()
	require.NoError(t, o.FinishDrag(context.Background()))
	assert.Empty(t, fake.calls)
}

func TestEditModeSingleTarget(t *testing.T) {
	fake := newFakeGateway()
	fake.groups = []*gateway.Group{{ID: 1, Name: "work"}}
	fake.sessions = []*gateway.Session{{ID: 2, Title: "chat"}}
	o := newTestOrganizer(t, fake, acceptAll)

	o.StartEdit(EditSession, 2, "chat")
	o.SetEditText("chat v2")
	// Starting an edit on another item implicitly ends the previous one.
	o.StartEdit(EditGroup, 1, "work")
	require.NotNil(t, o.Edit())
	assert.Equal(t, EditGroup, o.Edit().Kind)

	o.SetEditText("projects")
	require.NoError(t, o.CommitEdit(context.Background()))
	assert.Nil(t, o.Edit())
	assert.Equal(t, "projects", o.Group(1).Name)
	assert.Equal(t, "chat", o.Session(2).Title, "abandoned session edit must not commit")
}

func TestCancelEditSkipsGateway(t *testing.T) {
	fake := newFakeGateway()
	fake.sessions = []*gateway.Session{{ID: 1, Title: "chat"}}
	o := newTestOrganizer(t, fake, acceptAll)

	o.StartEdit(EditSession, 1, "chat")
	o.SetEditText("renamed")
	o.CancelEdit()
	require.NoError(t, o.CommitEdit(context.Background()))
	assert.Empty(t, fake.calls)
}

func TestCollapseState(t *testing.T) {
	fake := newFakeGateway()
	o := newTestOrganizer(t, fake, acceptAll)

	assert.False(t, o.IsCollapsed(1), "groups default to expanded")
	o.ToggleCollapse(1)
	assert.True(t, o.IsCollapsed(1))
	assert.False(t, o.IsCollapsed(2), "collapse state is per group")
	o.ToggleCollapse(1)
	assert.False(t, o.IsCollapsed(1))
}

func TestFirstSessionDisplayOrder(t *testing.T) {
	fake := newFakeGateway()
	fake.groups = []*gateway.Group{
		{ID: 1, Name: "second", Order: 1},
		{ID: 2, Name: "first", Order: 0},
	}
	fake.sessions = []*gateway.Session{
		{ID: 10, Title: "uncategorized", Order: 0},
		{ID: 11, Title: "in second", GroupID: groupID(1), Order: 0},
		{ID: 12, Title: "in first", GroupID: groupID(2), Order: 0},
	}
	o := newTestOrganizer(t, fake, acceptAll)

	first := o.FirstSession()
	require.NotNil(t, first)
	assert.Equal(t, int64(12), first.ID, "grouped sessions come before uncategorized")
}
