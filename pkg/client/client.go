// Package client is a Go client for the Synapse Link API. Store is the
// application-state object a UI renders from: the signed-in profile and
// the pending notifications, refreshed after every mutation that could
// affect them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/synapselink/backend/internal/db"
	"github.com/synapselink/backend/internal/graph"
	"github.com/synapselink/backend/internal/leaderboard"
)

// ErrNotSignedIn is returned by calls that need a current profile.
var ErrNotSignedIn = errors.New("not signed in")

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Store holds client-side session state and talks to the API.
// Safe for use from a single goroutine; the session file itself is
// guarded so two Store instances sharing a data dir don't corrupt it.
type Store struct {
	baseURL string
	http    *http.Client
	session *sessionStore

	profile       *db.Profile
	notifications []db.Notification
}

// NewStore creates a Store for the API at baseURL, persisting the session
// under dataDir.
func NewStore(baseURL, dataDir string) (*Store, error) {
	sess, err := newSessionStore(dataDir)
	if err != nil {
		return nil, err
	}
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		session: sess,
	}, nil
}

// Profile returns the signed-in profile, or nil.
func (s *Store) Profile() *db.Profile { return s.profile }

// Notifications returns the last fetched pending inbound requests.
func (s *Store) Notifications() []db.Notification { return s.notifications }

// SignIn resolves (or provisions) the profile for the given email, makes
// it current, persists the session, and loads notifications.
func (s *Store) SignIn(ctx context.Context, email string) (*db.Profile, error) {
	var p db.Profile
	err := s.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": email}, &p)
	if err != nil {
		return nil, err
	}
	s.profile = &p
	if err := s.session.save(session{UserID: p.ID}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.RefreshNotifications(ctx); err != nil {
		return &p, err
	}
	return &p, nil
}

// CheckUser re-hydrates the session from the persisted user id. When the
// id no longer resolves, the stale session is dropped.
func (s *Store) CheckUser(ctx context.Context) error {
	sess, err := s.session.load()
	if err != nil {
		return err
	}
	if sess.UserID == "" {
		return ErrNotSignedIn
	}

	var p db.Profile
	if err := s.do(ctx, http.MethodGet, "/api/auth/me/"+url.PathEscape(sess.UserID), nil, &p); err != nil {
		_ = s.session.clear()
		s.profile = nil
		return err
	}
	s.profile = &p
	return s.RefreshNotifications(ctx)
}

// SignOut drops the current profile, notifications, and persisted session.
func (s *Store) SignOut() error {
	s.profile = nil
	s.notifications = nil
	return s.session.clear()
}

// RefreshNotifications re-fetches pending inbound requests for the current
// user. Called automatically after every mutation that can affect them.
func (s *Store) RefreshNotifications(ctx context.Context) error {
	if s.profile == nil {
		return ErrNotSignedIn
	}
	var notifications []db.Notification
	path := "/api/connections/pending/" + url.PathEscape(s.profile.ID)
	if err := s.do(ctx, http.MethodGet, path, nil, &notifications); err != nil {
		return err
	}
	s.notifications = notifications
	return nil
}

// Connect sends a connection request from the current user.
func (s *Store) Connect(ctx context.Context, toUserID string) (*db.Connection, error) {
	if s.profile == nil {
		return nil, ErrNotSignedIn
	}
	var conn db.Connection
	body := map[string]string{"from_user_id": s.profile.ID, "to_user_id": toUserID}
	if err := s.do(ctx, http.MethodPost, "/api/connections", body, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// RespondToConnection accepts or declines a pending request, then
// refreshes notifications so the resolved request disappears locally.
func (s *Store) RespondToConnection(ctx context.Context, connectionID, status string) error {
	path := "/api/connections/" + url.PathEscape(connectionID)
	if err := s.do(ctx, http.MethodPut, path, map[string]string{"status": status}, nil); err != nil {
		return err
	}
	return s.RefreshNotifications(ctx)
}

// Endorse records a skill endorsement from the current user.
func (s *Store) Endorse(ctx context.Context, endorsedUserID, skill string) error {
	if s.profile == nil {
		return ErrNotSignedIn
	}
	body := map[string]string{
		"endorsed_user_id":    endorsedUserID,
		"endorsed_by_user_id": s.profile.ID,
		"skill":               skill,
	}
	return s.do(ctx, http.MethodPost, "/api/endorsements", body, nil)
}

// SaveProfile upserts a profile. When it is the current user's, the local
// copy is updated too.
func (s *Store) SaveProfile(ctx context.Context, p *db.Profile) error {
	var saved db.Profile
	if err := s.do(ctx, http.MethodPost, "/api/profiles", p, &saved); err != nil {
		return err
	}
	if s.profile != nil && s.profile.ID == saved.ID {
		s.profile = &saved
	}
	return nil
}

// Search queries profiles by name and/or skills.
func (s *Store) Search(ctx context.Context, name string, skills []string) ([]db.Profile, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if len(skills) > 0 {
		q.Set("skills", strings.Join(skills, ","))
	}
	var profiles []db.Profile
	if err := s.do(ctx, http.MethodGet, "/api/profiles/search?"+q.Encode(), nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SkillLeaderboard fetches the ranked skill tally.
func (s *Store) SkillLeaderboard(ctx context.Context) ([]leaderboard.SkillRank, error) {
	var ranks []leaderboard.SkillRank
	if err := s.do(ctx, http.MethodGet, "/api/leaderboard?type=skills", nil, &ranks); err != nil {
		return nil, err
	}
	return ranks, nil
}

// ConnectorLeaderboard fetches the ranked connector tally.
func (s *Store) ConnectorLeaderboard(ctx context.Context) ([]leaderboard.ConnectorRank, error) {
	var ranks []leaderboard.ConnectorRank
	if err := s.do(ctx, http.MethodGet, "/api/leaderboard?type=connectors", nil, &ranks); err != nil {
		return nil, err
	}
	return ranks, nil
}

// NetworkGraph fetches profiles and accepted connections and assembles
// them into the node/edge lists the visualization consumes.
func (s *Store) NetworkGraph(ctx context.Context) (graph.Data, error) {
	var payload struct {
		Profiles    []db.Profile    `json:"profiles"`
		Connections []db.Connection `json:"connections"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/network-graph", nil, &payload); err != nil {
		return graph.Data{}, err
	}
	return graph.Assemble(payload.Profiles, payload.Connections), nil
}

// do issues a request and unwraps the response envelope into out.
// A non-success envelope becomes an error carrying the server's message.
func (s *Store) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("malformed response (status %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		if env.Error == "" {
			env.Error = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return errors.New(env.Error)
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
