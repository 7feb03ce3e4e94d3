// Package organizer owns the client-side mirror of the group/session
// hierarchy and its transient view state. All durable state lives in the
// backend; every mutation round-trips through the gateway and refreshes.
package organizer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/scylladb/go-set/i64set"
	"golang.org/x/sync/errgroup"

	"github.com/kaiwenlu/llamadeck/gateway"
)

// DefaultSessionTitle is the title given to freshly created sessions.
const DefaultSessionTitle = "New Chat"

// DefaultGroupName is the name given to freshly created groups.
const DefaultGroupName = "New Group"

// Gateway is the subset of the backend client the organizer uses.
type Gateway interface {
	ListGroups(ctx context.Context) ([]*gateway.Group, error)
	CreateGroup(ctx context.Context, name string) (*gateway.Group, error)
	RenameGroup(ctx context.Context, id int64, name string) (*gateway.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
	ListSessions(ctx context.Context) ([]*gateway.Session, error)
	CreateSession(ctx context.Context, title string, bucket gateway.Bucket) (*gateway.Session, error)
	RenameSession(ctx context.Context, id int64, title string) (*gateway.Session, error)
	MoveSession(ctx context.Context, id int64, bucket gateway.Bucket, order int) (*gateway.Session, error)
	DeleteSession(ctx context.Context, id int64) error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// EditKind says what kind of item is being renamed.
type EditKind int

const (
	// EditSession marks a session rename in progress.
	EditSession EditKind = iota
	// EditGroup marks a group rename in progress.
	EditGroup
)

// EditState tracks the single in-flight rename, if any.
type EditState struct {
	Kind EditKind
	ID   int64
	Text string
}

// DragState tracks an in-flight drag for visual feedback.
type DragState struct {
	SessionID int64
	// Hover is the last computed drop target; nil until the pointer crosses a
	// candidate row.
	Hover *Drop
}

// Organizer holds the cached hierarchy plus transient view state. It is owned
// by a single presentation context; no internal locking.
type Organizer struct {
	gateway Gateway
	confirm Confirmer
	log     *slog.Logger

	groups   []*gateway.Group
	sessions []*gateway.Session

	collapsed *i64set.Set
	edit      *EditState
	drag      *DragState
}

// New instantiates and returns a new organizer.
func New(gw Gateway, confirm Confirmer, log *slog.Logger) *Organizer {
	return &Organizer{
		gateway:   gw,
		confirm:   confirm,
		log:       log,
		collapsed: i64set.New(),
	}
}

// Refresh fetches groups and sessions concurrently and swaps the cache
// atomically. If either fetch fails, the prior cache is retained untouched.
func (o *Organizer) Refresh(ctx context.Context) error {
	var groups []*gateway.Group
	var sessions []*gateway.Session

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = o.gateway.ListGroups(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = o.gateway.ListSessions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "refreshing organizer")
	}

	SortGroups(groups)
	SortSessions(sessions)
	o.groups = groups
	o.sessions = sessions
	return nil
}

// Groups returns the cached groups in display order.
func (o *Organizer) Groups() []*gateway.Group {
	return o.groups
}

// Sessions returns all cached sessions.
func (o *Organizer) Sessions() []*gateway.Session {
	return o.sessions
}

// SessionsIn returns the cached sessions of one bucket in display order.
func (o *Organizer) SessionsIn(bucket gateway.Bucket) []*gateway.Session {
	var sessions []*gateway.Session
	for _, session := range o.sessions {
		if bucket.Contains(session) {
			sessions = append(sessions, session)
		}
	}
	return sessions
}

// Session returns the cached session with the given id, or nil.
func (o *Organizer) Session(id int64) *gateway.Session {
	for _, session := range o.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}

// Group returns the cached group with the given id, or nil.
func (o *Organizer) Group(id int64) *gateway.Group {
	for _, group := range o.groups {
		if group.ID == id {
			return group
		}
	}
	return nil
}

// FirstSession returns the first session in display order (grouped buckets
// first, then uncategorized), or nil when no sessions exist.
func (o *Organizer) FirstSession() *gateway.Session {
	for _, group := range o.groups {
		if sessions := o.SessionsIn(gateway.GroupBucket(group.ID)); len(sessions) > 0 {
			return sessions[0]
		}
	}
	if sessions := o.SessionsIn(gateway.Uncategorized); len(sessions) > 0 {
		return sessions[0]
	}
	return nil
}

// CreateSession creates a session in the given bucket and refreshes.
func (o *Organizer) CreateSession(ctx context.Context, bucket gateway.Bucket) (*gateway.Session, error) {
	session, err := o.gateway.CreateSession(ctx, DefaultSessionTitle, bucket)
	if err != nil {
		return nil, errors.Wrap(err, "creating session")
	}
	if err := o.Refresh(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// CreateGroup creates a group and refreshes.
func (o *Organizer) CreateGroup(ctx context.Context, name string) (*gateway.Group, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultGroupName
	}
	group, err := o.gateway.CreateGroup(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "creating group")
	}
	if err := o.Refresh(ctx); err != nil {
		return nil, err
	}
	return group, nil
}

// RenameSession renames a session. A rename to the current title or to an
// empty string is a no-op that never reaches the gateway.
func (o *Organizer) RenameSession(ctx context.Context, id int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	if session := o.Session(id); session != nil && session.Title == title {
		return nil
	}
	if _, err := o.gateway.RenameSession(ctx, id, title); err != nil {
		return errors.Wrap(err, "renaming session")
	}
	return o.Refresh(ctx)
}

// RenameGroup renames a group with the same no-op rules as RenameSession.
func (o *Organizer) RenameGroup(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if group := o.Group(id); group != nil && group.Name == name {
		return nil
	}
	if _, err := o.gateway.RenameGroup(ctx, id, name); err != nil {
		return errors.Wrap(err, "renaming group")
	}
	return o.Refresh(ctx)
}

// ErrDeclined is returned when the user declines a confirmation prompt.
var ErrDeclined = errors.New("declined by user")

// DeleteSession deletes a session after confirmation. activeID is the
// currently active session; when it is the one deleted, the returned session
// is the replacement to activate: the first remaining session in display
// order, or a freshly created one when none remain. A nil session with nil
// error means the active session is unaffected.
func (o *Organizer) DeleteSession(ctx context.Context, id, activeID int64) (*gateway.Session, error) {
	title := ""
	if session := o.Session(id); session != nil {
		title = session.Title
	}
	if !o.confirm.Confirm("Delete session \"" + title + "\"?") {
		return nil, ErrDeclined
	}

	if err := o.gateway.DeleteSession(ctx, id); err != nil {
		return nil, errors.Wrap(err, "deleting session")
	}
	if err := o.Refresh(ctx); err != nil {
		return nil, err
	}
	if id != activeID {
		return nil, nil
	}

	// The active session is gone; the controller must never hold a dangling
	// id, so hand back a replacement.
	if next := o.FirstSession(); next != nil {
		return next, nil
	}
	session, err := o.CreateSession(ctx, gateway.Uncategorized)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteGroup deletes a group after confirmation. The backend reassigns the
// group's sessions to uncategorized; the client only refreshes.
func (o *Organizer) DeleteGroup(ctx context.Context, id int64) error {
	name := ""
	if group := o.Group(id); group != nil {
		name = group.Name
	}
	if !o.confirm.Confirm("Delete group \"" + name + "\"? Its sessions move to uncategorized.") {
		return ErrDeclined
	}

	if err := o.gateway.DeleteGroup(ctx, id); err != nil {
		return errors.Wrap(err, "deleting group")
	}
	return o.Refresh(ctx)
}

// MoveSession persists a drop via the ordering engine and refreshes.
func (o *Organizer) MoveSession(ctx context.Context, sessionID int64, drop Drop) error {
	placement := PlacementFor(o.sessions, drop)
	o.log.Debug("moving session",
		"session_id", sessionID, "bucket", placement.Bucket.String(), "order", placement.Order)
	if _, err := o.gateway.MoveSession(ctx, sessionID, placement.Bucket, placement.Order); err != nil {
		return errors.Wrap(err, "moving session")
	}
	return o.Refresh(ctx)
}

// StartEdit begins renaming an item, implicitly ending any prior edit.
func (o *Organizer) StartEdit(kind EditKind, id int64, current string) {
	o.edit = &EditState{Kind: kind, ID: id, Text: current}
}

// Edit returns the in-flight rename, or nil.
func (o *Organizer) Edit() *EditState {
	return o.edit
}

// SetEditText updates the pending rename text.
func (o *Organizer) SetEditText(text string) {
	if o.edit != nil {
		o.edit.Text = text
	}
}

// CommitEdit ends the edit and persists the rename (subject to no-op rules).
func (o *Organizer) CommitEdit(ctx context.Context) error {
	edit := o.edit
	o.edit = nil
	if edit == nil {
		return nil
	}
	if edit.Kind == EditGroup {
		return o.RenameGroup(ctx, edit.ID, edit.Text)
	}
	return o.RenameSession(ctx, edit.ID, edit.Text)
}

// CancelEdit discards the edit without touching the gateway.
func (o *Organizer) CancelEdit() {
	o.edit = nil
}

// ToggleCollapse flips a group's collapse state. Purely local.
func (o *Organizer) ToggleCollapse(groupID int64) {
	if o.collapsed.Has(groupID) {
		o.collapsed.Remove(groupID)
		return
	}
	o.collapsed.Add(groupID)
}

// IsCollapsed reports whether a group is collapsed. Defaults to expanded.
func (o *Organizer) IsCollapsed(groupID int64) bool {
	return o.collapsed.Has(groupID)
}

// StartDrag begins dragging a session.
func (o *Organizer) StartDrag(sessionID int64) {
	o.drag = &DragState{SessionID: sessionID}
}

// Drag returns the in-flight drag, or nil.
func (o *Organizer) Drag() *DragState {
	return o.drag
}

// HoverOver records the latest drop target while dragging. Call on every
// pointer event over a candidate row.
func (o *Organizer) HoverOver(drop Drop) {
	if o.drag != nil {
		o.drag.Hover = &drop
	}
}

// FinishDrag drops the dragged session at the last hover target and clears
// the drag state. A drag with no hover target is a no-op.
func (o *Organizer) FinishDrag(ctx context.Context) error {
	drag := o.drag
	o.drag = nil
	if drag == nil || drag.Hover == nil {
		return nil
	}
	return o.MoveSession(ctx, drag.SessionID, *drag.Hover)
}

// CancelDrag clears the drag state without moving anything.
func (o *Organizer) CancelDrag() {
	o.drag = nil
}
