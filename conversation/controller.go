// Package conversation manages the active session's transcript and the
// lifecycle of one chat turn: Idle -> Sending -> {Completed|Cancelled|Failed}
// -> Idle. At most one turn is in flight per controller.
package conversation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/kaiwenlu/llamadeck/gateway"
)

// Gateway is the subset of the backend client the controller uses.
type Gateway interface {
	ListMessages(ctx context.Context, sessionID int64) ([]*gateway.Message, error)
	SendChat(ctx context.Context, sessionID int64, content string) (*gateway.Message, error)
}

// State of the turn machine.
type State int

const (
	// Idle means no request is outstanding; sending is allowed.
	Idle State = iota
	// Sending means a turn is in flight; further sends are rejected.
	Sending
)

// Outcome of a resolved turn.
type Outcome int

const (
	// Completed means the assistant reply was appended.
	Completed Outcome = iota
	// Cancelled means the user stopped the turn; the optimistic user message
	// stays, the pending reply is discarded.
	Cancelled
	// Failed means the gateway call errored; a synthetic notice was appended.
	Failed
	// Discarded means the turn resolved after its session stopped being
	// active, or after it was already retired; nothing was applied.
	Discarded
)

// Validation errors returned by Send before any gateway call.
var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrTurnInFlight    = errors.New("a turn is already in flight")
	ErrNoActiveSession = errors.New("no active session")
)

// Turn is the cancellation token for one in-flight send. It remembers the
// session it was issued against so late replies never land on another
// session's transcript.
type Turn struct {
	ID        string
	SessionID int64
	Content   string
	ctx       context.Context
	cancel    context.CancelFunc
}

// Result carries a finished turn back to Resolve.
type Result struct {
	Turn  *Turn
	Reply *gateway.Message
	Err   error
}

// Resolution is what Resolve applied.
type Resolution struct {
	Outcome Outcome
	// RestoredInput is the cancelled turn's submitted content, handed back so
	// the presentation layer can put it in the input field for editing.
	RestoredInput string
}

// Controller owns the active session id, its message list and the single
// in-flight turn. It is owned by one presentation context; no locking.
type Controller struct {
	ctx     context.Context
	gateway Gateway
	log     *slog.Logger

	activeSessionID int64
	messages        []*gateway.Message
	turn            *Turn
	replyContext    string

	// clipboard is the presentation layer's clipboard binding; nil means
	// CopyMessage is a no-op.
	clipboard func([]byte)
}

// New instantiates and returns a new controller. ctx is the lifetime of the
// client; every turn's token derives from it.
func New(ctx context.Context, gw Gateway, log *slog.Logger) *Controller {
	return &Controller{ctx: ctx, gateway: gw, log: log}
}

// SetClipboard installs the clipboard write binding used by CopyMessage.
func (c *Controller) SetClipboard(write func([]byte)) {
	c.clipboard = write
}

// State returns Idle or Sending.
func (c *Controller) State() State {
	if c.turn != nil {
		return Sending
	}
	return Idle
}

// ActiveSessionID returns the active session id, zero only during bootstrap.
func (c *Controller) ActiveSessionID() int64 {
	return c.activeSessionID
}

// Messages returns the visible transcript of the active session.
func (c *Controller) Messages() []*gateway.Message {
	return c.messages
}

// Activate switches the active session and reloads its transcript. On fetch
// failure the previous session and transcript are kept.
func (c *Controller) Activate(ctx context.Context, sessionID int64) error {
	messages, err := c.gateway.ListMessages(ctx, sessionID)
	if err != nil {
		return errors.Wrap(err, "loading messages")
	}
	c.activeSessionID = sessionID
	c.messages = messages
	return nil
}

// SetReplyContext arms a quoted-reply context for the next send.
func (c *Controller) SetReplyContext(content string) {
	c.replyContext = content
}

// ClearReplyContext disarms the reply context.
func (c *Controller) ClearReplyContext() {
	c.replyContext = ""
}

// ReplyContext returns the armed reply context, empty when none.
func (c *Controller) ReplyContext() string {
	return c.replyContext
}

// Send validates the input, applies an armed reply context, appends the
// optimistic user message and transitions to Sending. The returned turn must
// be passed to Execute (typically from a goroutine) and its result to
// Resolve. No network activity happens here.
func (c *Controller) Send(input string) (*Turn, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}
	if c.turn != nil {
		return nil, ErrTurnInFlight
	}
	if c.activeSessionID == 0 {
		return nil, ErrNoActiveSession
	}

	if c.replyContext != "" {
		input = quote(c.replyContext) + "\n\n" + input
		c.replyContext = ""
	}

	// Optimistic append: the transcript reflects the user's input before any
	// network activity. Never rolled back, even on cancellation.
	c.messages = append(c.messages, &gateway.Message{Role: gateway.RoleUser, Content: input})

	turnCtx, cancel := context.WithCancel(c.ctx)
	c.turn = &Turn{
		ID:        uuid.New().String()[:8],
		SessionID: c.activeSessionID,
		Content:   input,
		ctx:       turnCtx,
		cancel:    cancel,
	}
	c.log.Debug("turn started", "turn_id", c.turn.ID, "session_id", c.turn.SessionID)
	return c.turn, nil
}

// Execute performs the gateway call for a turn. It blocks until the backend
// replies or the turn's token is cancelled; safe to run from a goroutine.
func (c *Controller) Execute(turn *Turn) *Result {
	reply, err := c.gateway.SendChat(turn.ctx, turn.SessionID, turn.Content)
	return &Result{Turn: turn, Reply: reply, Err: err}
}

// Resolve applies a finished turn and returns to Idle.
func (c *Controller) Resolve(result *Result) Resolution {
	turn := result.Turn
	if turn != c.turn {
		// Token already retired: a stop raced completion, or a new session's
		// turn replaced it. Nothing to apply.
		return Resolution{Outcome: Discarded}
	}
	c.turn = nil
	turn.cancel()

	if turn.SessionID != c.activeSessionID {
		// The user switched sessions mid-flight; dropping the outcome keeps
		// the reply off the wrong transcript.
		c.log.Debug("turn discarded", "turn_id", turn.ID, "session_id", turn.SessionID)
		return Resolution{Outcome: Discarded}
	}

	switch {
	case result.Err == nil:
		c.messages = append(c.messages, result.Reply)
		return Resolution{Outcome: Completed}

	case errors.Is(result.Err, context.Canceled):
		// The optimistic user message stays in the transcript; hand its
		// content back for editing and resending.
		return Resolution{Outcome: Cancelled, RestoredInput: turn.Content}

	default:
		c.log.Debug("turn failed", "turn_id", turn.ID, "error", result.Err)
		c.messages = append(c.messages, &gateway.Message{
			Role:    gateway.RoleAssistant,
			Content: "Error: " + result.Err.Error(),
		})
		return Resolution{Outcome: Failed}
	}
}

// Cancel aborts the in-flight turn via its token. Returns false when no turn
// is outstanding (stop after completion is a no-op).
func (c *Controller) Cancel() bool {
	if c.turn == nil {
		return false
	}
	c.turn.cancel()
	return true
}

// CopyMessage writes content to the clipboard. Side effect only.
func (c *Controller) CopyMessage(content string) {
	if c.clipboard != nil {
		c.clipboard([]byte(content))
	}
}

// quote prefixes every line of content with "> ".
func quote(content string) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}
