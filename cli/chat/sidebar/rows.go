package sidebar

import (
	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/organizer"
)

// RowKind identifies what a sidebar row renders.
type RowKind int

const (
	// GroupRow is a group header.
	GroupRow RowKind = iota
	// UncategorizedRow is the header of the uncategorized bucket.
	UncategorizedRow
	// SessionRow is a session line.
	SessionRow
)

// Row is one rendered line of the sidebar tree.
type Row struct {
	Kind    RowKind
	Bucket  gateway.Bucket
	Group   *gateway.Group
	Session *gateway.Session
}

// BuildRows flattens the organizer's hierarchy into display rows: each group
// header followed by its sessions (unless collapsed), then the uncategorized
// header and its sessions.
func BuildRows(org *organizer.Organizer) []Row {
	var rows []Row
	for _, group := range org.Groups() {
		bucket := gateway.GroupBucket(group.ID)
		rows = append(rows, Row{Kind: GroupRow, Bucket: bucket, Group: group})
		if org.IsCollapsed(group.ID) {
			continue
		}
		for _, session := range org.SessionsIn(bucket) {
			rows = append(rows, Row{Kind: SessionRow, Bucket: bucket, Session: session})
		}
	}
	rows = append(rows, Row{Kind: UncategorizedRow, Bucket: gateway.Uncategorized})
	for _, session := range org.SessionsIn(gateway.Uncategorized) {
		rows = append(rows, Row{Kind: SessionRow, Bucket: gateway.Uncategorized, Session: session})
	}
	return rows
}

// dropSlot is one insertion point a keyboard move can land on. renderIndex is
// the row index the indicator line is drawn above (len(rows) for the very
// bottom).
type dropSlot struct {
	drop        organizer.Drop
	renderIndex int
}

// buildDropSlots enumerates the insertion points for a dragged session, in
// display order: above each session of a bucket, after its last session, and
// the bare header slot for buckets with no visible sessions. The dragged
// session's own rows are skipped.
func buildDropSlots(rows []Row, draggedID int64) []dropSlot {
	var slots []dropSlot
	flush := func(bucket gateway.Bucket, lastSessionID int64, nextIndex int) {
		if lastSessionID == 0 {
			slots = append(slots, dropSlot{
				drop:        organizer.Drop{Bucket: bucket},
				renderIndex: nextIndex,
			})
			return
		}
		slots = append(slots, dropSlot{
			drop:        organizer.Drop{Bucket: bucket, SessionID: lastSessionID, Position: organizer.PositionBottom},
			renderIndex: nextIndex,
		})
	}

	var bucket gateway.Bucket
	var lastSessionID int64
	headerIndex := -1
	for i, row := range rows {
		switch row.Kind {
		case GroupRow, UncategorizedRow:
			if headerIndex >= 0 {
				flush(bucket, lastSessionID, i)
			}
			bucket = row.Bucket
			lastSessionID = 0
			headerIndex = i
		case SessionRow:
			if row.Session.ID == draggedID {
				continue
			}
			slots = append(slots, dropSlot{
				drop:        organizer.Drop{Bucket: row.Bucket, SessionID: row.Session.ID, Position: organizer.PositionTop},
				renderIndex: i,
			})
			lastSessionID = row.Session.ID
		}
	}
	if headerIndex >= 0 {
		flush(bucket, lastSessionID, len(rows))
	}
	return slots
}
