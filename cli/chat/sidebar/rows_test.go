package sidebar

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/organizer"
)

type fakeGateway struct {
	groups   []*gateway.Group
	sessions []*gateway.Session
	renames  []string
}

func (f *fakeGateway) ListGroups(context.Context) ([]*gateway.Group, error) {
	return f.groups, nil
}
func (f *fakeGateway) CreateGroup(context.Context, string) (*gateway.Group, error) {
	panic("not used")
}
func (f *fakeGateway) RenameGroup(context.Context, int64, string) (*gateway.Group, error) {
	panic("not used")
}
func (f *fakeGateway) DeleteGroup(context.Context, int64) error { panic("not used") }
func (f *fakeGateway) ListSessions(context.Context) ([]*gateway.Session, error) {
	return f.sessions, nil
}
func (f *fakeGateway) CreateSession(context.Context, string, gateway.Bucket) (*gateway.Session, error) {
	panic("not used")
}
func (f *fakeGateway) RenameSession(_ context.Context, id int64, title string) (*gateway.Session, error) {
	f.renames = append(f.renames, title)
	for _, session := range f.sessions {
		if session.ID == id {
			session.Title = title
			return session, nil
		}
	}
	panic("unknown session")
}
func (f *fakeGateway) MoveSession(context.Context, int64, gateway.Bucket, int) (*gateway.Session, error) {
	panic("not used")
}
func (f *fakeGateway) DeleteSession(context.Context, int64) error { panic("not used") }

func groupID(id int64) *int64 { return &id }

func newOrganizer(t *testing.T) (*organizer.Organizer, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{
		groups: []*gateway.Group{
			{ID: 1, Name: "Work", Order: 0},
			{ID: 2, Name: "Play", Order: 1},
		},
		sessions: []*gateway.Session{
			{ID: 10, Title: "a", GroupID: groupID(1), Order: 0},
			{ID: 11, Title: "b", GroupID: groupID(1), Order: 1},
			{ID: 12, Title: "c", Order: 0},
		},
	}
	org := organizer.New(gw, organizer.ConfirmerFunc(func(string) bool { return true }), slog.New(slog.DiscardHandler))
	require.NoError(t, org.Refresh(context.Background()))
	return org, gw
}

func TestBuildRows(t *testing.T) {
	t.Parallel()
	org, _ := newOrganizer(t)

	rows := BuildRows(org)
	require.Len(t, rows, 6)
	require.Equal(t, GroupRow, rows[0].Kind)
	require.Equal(t, "Work", rows[0].Group.Name)
	require.Equal(t, SessionRow, rows[1].Kind)
	require.Equal(t, int64(10), rows[1].Session.ID)
	require.Equal(t, int64(11), rows[2].Session.ID)
	require.Equal(t, "Play", rows[3].Group.Name)
	require.Equal(t, UncategorizedRow, rows[4].Kind)
	require.Equal(t, int64(12), rows[5].Session.ID)
}

func TestBuildRowsCollapsed(t *testing.T) {
	t.Parallel()
	org, _ := newOrganizer(t)
	org.ToggleCollapse(1)

	rows := BuildRows(org)
	require.Len(t, rows, 4)
	require.Equal(t, GroupRow, rows[0].Kind)
	require.Equal(t, GroupRow, rows[1].Kind)
	require.Equal(t, "Play", rows[1].Group.Name)
}

func TestBuildDropSlots(t *testing.T) {
	t.Parallel()
	org, _ := newOrganizer(t)
	rows := BuildRows(org)

	slots := buildDropSlots(rows, 11)

	// Above session 10, after session 10 (11 itself is skipped), the empty
	// Play header, above session 12, after session 12.
	require.Len(t, slots, 5)
	require.Equal(t, organizer.Drop{Bucket: gateway.GroupBucket(1), SessionID: 10, Position: organizer.PositionTop}, slots[0].drop)
	require.Equal(t, organizer.Drop{Bucket: gateway.GroupBucket(1), SessionID: 10, Position: organizer.PositionBottom}, slots[1].drop)
	require.Equal(t, organizer.Drop{Bucket: gateway.GroupBucket(2)}, slots[2].drop)
	require.Equal(t, organizer.Drop{Bucket: gateway.Uncategorized, SessionID: 12, Position: organizer.PositionTop}, slots[3].drop)
	require.Equal(t, organizer.Drop{Bucket: gateway.Uncategorized, SessionID: 12, Position: organizer.PositionBottom}, slots[4].drop)
}

func TestDropAt(t *testing.T) {
	t.Parallel()
	org, _ := newOrganizer(t)
	rows := BuildRows(org)

	// Group header row.
	drop, ok := dropAt(rows, 10, 0, 2, 2)
	require.True(t, ok)
	require.Equal(t, organizer.Drop{Bucket: gateway.GroupBucket(1)}, drop)

	// Hovering a sibling session inserts above it.
	drop, ok = dropAt(rows, 10, 2, 4, 2)
	require.True(t, ok)
	require.Equal(t, organizer.Drop{Bucket: gateway.GroupBucket(1), SessionID: 11, Position: organizer.PositionTop}, drop)

	// The dragged session's own row is not a target.
	_, ok = dropAt(rows, 10, 1, 3, 2)
	require.False(t, ok)

	// Below the tree appends to the last bucket.
	drop, ok = dropAt(rows, 10, len(rows), 9, 2)
	require.True(t, ok)
	require.Equal(t, organizer.Drop{Bucket: gateway.Uncategorized, SessionID: 12, Position: organizer.PositionBottom}, drop)
}
