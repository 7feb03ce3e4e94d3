// Package gateway implements the HTTP client for the local inference backend.
// The backend owns all durable state; this client only moves JSON.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/kaiwenlu/llamadeck/internal/configuration"
)

const errorBodySnippetLength = 200

// Client talks to the backend over HTTP with JSON bodies.
type Client struct {
	baseURL string
	http    *http.Client
}

// New instantiates and returns a new client.
func New(config *configuration.Config) *Client {
	return &Client{
		baseURL: config.BackendURL,
		http:    &http.Client{Timeout: time.Duration(config.RequestTimeout) * time.Second},
	}
}

// do issues one request and decodes the JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshaling request body")
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.http.Do(request)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrapf(err, "%s %s: reading response", method, path)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		snippet := responseBody
		if len(snippet) > errorBodySnippetLength {
			snippet = snippet[:errorBodySnippetLength]
		}
		return errors.Errorf("%s %s: status %d: %s", method, path, response.StatusCode, string(snippet))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return errors.Wrapf(err, "%s %s: unmarshaling response", method, path)
	}
	return nil
}

// ListGroups fetches all groups.
func (c *Client) ListGroups(ctx context.Context) ([]*Group, error) {
	var groups []*Group
	if err := c.do(ctx, http.MethodGet, "/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup creates a group with the given name.
func (c *Client) CreateGroup(ctx context.Context, name string) (*Group, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	group := &Group{}
	if err := c.do(ctx, http.MethodPost, "/groups", body, group); err != nil {
		return nil, err
	}
	return group, nil
}

// RenameGroup updates a group's name.
func (c *Client) RenameGroup(ctx context.Context, id int64, name string) (*Group, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	group := &Group{}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/groups/%d", id), body, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup deletes a group. The backend reassigns its sessions to uncategorized.
func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/groups/%d", id), nil, nil)
}

// ListSessions fetches all sessions.
func (c *Client) ListSessions(ctx context.Context) ([]*Session, error) {
	var sessions []*Session
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateSession creates a session in the given bucket.
func (c *Client) CreateSession(ctx context.Context, title string, bucket Bucket) (*Session, error) {
	body := struct {
		Title   string `json:"title"`
		GroupID *int64 `json:"group_id"`
	}{Title: title, GroupID: bucket.wireID()}
	session := &Session{}
	if err := c.do(ctx, http.MethodPost, "/sessions", body, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RenameSession updates a session's title.
func (c *Client) RenameSession(ctx context.Context, id int64, title string) (*Session, error) {
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	session := &Session{}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/sessions/%d", id), body, session); err != nil {
		return nil, err
	}
	return session, nil
}

// MoveSession assigns a session to a bucket at the given order.
func (c *Client) MoveSession(ctx context.Context, id int64, bucket Bucket, order int) (*Session, error) {
	body := struct {
		GroupID *int64 `json:"group_id"`
		Order   int    `json:"order"`
	}{GroupID: bucket.wireID(), Order: order}
	session := &Session{}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/sessions/%d/move", id), body, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession deletes a session and its messages.
func (c *Client) DeleteSession(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/sessions/%d", id), nil, nil)
}

// ListMessages fetches the full transcript of a session.
func (c *Client) ListMessages(ctx context.Context, sessionID int64) ([]*Message, error) {
	var messages []*Message
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d/messages", sessionID), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendChat submits one chat turn and blocks until the assistant reply.
// Cancel via ctx; there is no client-side timeout beyond the HTTP client's.
func (c *Client) SendChat(ctx context.Context, sessionID int64, content string) (*Message, error) {
	body := struct {
		SessionID int64  `json:"session_id"`
		Content   string `json:"content"`
	}{SessionID: sessionID, Content: content}
	message := &Message{}
	if err := c.do(ctx, http.MethodPost, "/chat", body, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Status fetches backend health.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	status := &Status{}
	if err := c.do(ctx, http.MethodGet, "/status", nil, status); err != nil {
		return nil, err
	}
	return status, nil
}
