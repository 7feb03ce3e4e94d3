package organizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaiwenlu/llamadeck/gateway"
)

func groupID(id int64) *int64 { return &id }

func testSessions() []*gateway.Session {
	return []*gateway.Session{
		{ID: 1, Title: "a", GroupID: groupID(10), Order: 0},
		{ID: 2, Title: "b", GroupID: groupID(10), Order: 3},
		{ID: 3, Title: "c", GroupID: nil, Order: 1},
	}
}

func TestPlacementForTopDrop(t *testing.T) {
	// Dropping on the upper half of a row reuses the target's order verbatim.
	placement := PlacementFor(testSessions(), Drop{
		Bucket:    gateway.GroupBucket(10),
		SessionID: 2,
		Position:  PositionTop,
	})
	assert.Equal(t, gateway.GroupBucket(10), placement.Bucket)
	assert.Equal(t, 3, placement.Order)
}

func TestPlacementForBottomDrop(t *testing.T) {
	placement := PlacementFor(testSessions(), Drop{
		Bucket:    gateway.GroupBucket(10),
		SessionID: 2,
		Position:  PositionBottom,
	})
	assert.Equal(t, 4, placement.Order)
}

func TestPlacementForHeaderDrop(t *testing.T) {
	// No target session: the dragged item lands at order 0 in the bucket.
	placement := PlacementFor(testSessions(), Drop{Bucket: gateway.GroupBucket(10)})
	assert.Equal(t, gateway.GroupBucket(10), placement.Bucket)
	assert.Equal(t, 0, placement.Order)

	placement = PlacementFor(testSessions(), Drop{Bucket: gateway.Uncategorized})
	assert.True(t, placement.Bucket.IsUncategorized())
	assert.Equal(t, 0, placement.Order)
}

func TestPlacementForVanishedTarget(t *testing.T) {
	placement := PlacementFor(testSessions(), Drop{
		Bucket:    gateway.Uncategorized,
		SessionID: 99,
		Position:  PositionTop,
	})
	assert.Equal(t, 0, placement.Order)
}

func TestHoverPosition(t *testing.T) {
	// Row spanning y=10..14: midpoint at 12.
	assert.Equal(t, PositionTop, HoverPosition(10, 10, 4))
	assert.Equal(t, PositionTop, HoverPosition(11.9, 10, 4))
	assert.Equal(t, PositionBottom, HoverPosition(12, 10, 4))
	assert.Equal(t, PositionBottom, HoverPosition(13.9, 10, 4))
}

func TestSortSessionsTieBreak(t *testing.T) {
	sessions := []*gateway.Session{
		{ID: 5, Order: 1},
		{ID: 2, Order: 1},
		{ID: 9, Order: 0},
	}
	SortSessions(sessions)
	assert.Equal(t, []int64{9, 2, 5}, []int64{sessions[0].ID, sessions[1].ID, sessions[2].ID})
}
