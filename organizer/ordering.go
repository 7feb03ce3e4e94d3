package organizer

import (
	"sort"

	"github.com/kaiwenlu/llamadeck/gateway"
)

// Position is the half of a row a drop lands on.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// Drop describes where a dragged session is released.
// SessionID is zero when the drop lands on a group header or an empty bucket.
type Drop struct {
	Bucket    gateway.Bucket
	SessionID int64
	Position  Position
}

// Placement is the (bucket, order) to persist for a dragged session.
type Placement struct {
	Bucket gateway.Bucket
	Order  int
}

// PlacementFor computes the placement for a drop against the current session
// list. It performs no renumbering of other sessions: order collisions are
// tolerated and resolved by the stable id tie-break in SortSessions.
func PlacementFor(sessions []*gateway.Session, drop Drop) Placement {
	if drop.SessionID == 0 {
		return Placement{Bucket: drop.Bucket, Order: 0}
	}

	var target *gateway.Session
	for _, session := range sessions {
		if session.ID == drop.SessionID {
			target = session
			break
		}
	}
	if target == nil {
		// Target vanished under us (concurrent delete); fall back to the
		// header-drop placement.
		return Placement{Bucket: drop.Bucket, Order: 0}
	}

	order := target.Order
	if drop.Position == PositionBottom {
		order = target.Order + 1
	}
	return Placement{Bucket: drop.Bucket, Order: order}
}

// HoverPosition classifies a pointer against a row bounding box: the upper
// half selects top, the lower half selects bottom. Recompute on every hover
// event, not once on drop.
func HoverPosition(pointerY, rowTop, rowHeight float64) Position {
	if pointerY < rowTop+rowHeight/2 {
		return PositionTop
	}
	return PositionBottom
}

// SortSessions orders sessions by order ascending, ties broken by id
// ascending. The sort is stable so equal orders keep a deterministic layout.
func SortSessions(sessions []*gateway.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Order != sessions[j].Order {
			return sessions[i].Order < sessions[j].Order
		}
		return sessions[i].ID < sessions[j].ID
	})
}

// SortGroups orders groups by order ascending, ties broken by id ascending.
func SortGroups(groups []*gateway.Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Order != groups[j].Order {
			return groups[i].Order < groups[j].Order
		}
		return groups[i].ID < groups[j].ID
	})
}
