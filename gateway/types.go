package gateway

import "fmt"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Group is a named container for sessions. Owned by the backend.
type Group struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Session is a single conversation. GroupID is nil for uncategorized sessions.
type Session struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	GroupID *int64 `json:"group_id"`
	Order   int    `json:"order"`
}

// Bucket returns the bucket this session belongs to.
func (s *Session) Bucket() Bucket {
	if s.GroupID == nil {
		return Uncategorized
	}
	return GroupBucket(*s.GroupID)
}

// Message is one entry of a session transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Status reports backend health.
type Status struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Device      string `json:"device"`
}

// Bucket identifies a group or the implicit uncategorized partition.
// The zero value is the uncategorized bucket.
type Bucket struct {
	id      int64
	grouped bool
}

// Uncategorized is the implicit bucket for sessions without a group.
var Uncategorized = Bucket{}

// GroupBucket returns the bucket for a real group.
func GroupBucket(id int64) Bucket {
	return Bucket{id: id, grouped: true}
}

// GroupID returns the group id and whether this bucket is a real group.
func (b Bucket) GroupID() (int64, bool) {
	return b.id, b.grouped
}

// IsUncategorized reports whether this is the implicit bucket.
func (b Bucket) IsUncategorized() bool {
	return !b.grouped
}

// Contains reports whether the session belongs to this bucket.
func (b Bucket) Contains(s *Session) bool {
	if !b.grouped {
		return s.GroupID == nil
	}
	return s.GroupID != nil && *s.GroupID == b.id
}

// wireID returns the nullable group id used on the wire.
func (b Bucket) wireID() *int64 {
	if !b.grouped {
		return nil
	}
	id := b.id
	return &id
}

// String implements fmt.Stringer.
func (b Bucket) String() string {
	if !b.grouped {
		return "uncategorized"
	}
	return fmt.Sprintf("group/%d", b.id)
}
