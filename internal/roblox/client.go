// Package roblox is a thin client for the four public Roblox web APIs the
// status card needs: username resolution, presence, game metadata and
// avatar thumbnails.
package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var (
	// ErrEmptyUsername is returned before any network I/O happens.
	ErrEmptyUsername = errors.New("username must not be empty")
	// ErrUserNotFound means the username resolved to zero accounts.
	ErrUserNotFound = errors.New("user not found")
)

// Client talks to the Roblox web APIs. The base URLs are configurable so
// tests can point them at local servers.
type Client struct {
	UsersBaseURL      string
	PresenceBaseURL   string
	GamesBaseURL      string
	ThumbnailsBaseURL string

	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used by the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithBaseURLs overrides the four upstream hosts. Empty strings leave the
// default in place.
func WithBaseURLs(users, presence, games, thumbnails string) Option {
	return func(c *Client) {
		if users != "" {
			c.UsersBaseURL = users
		}
		if presence != "" {
			c.PresenceBaseURL = presence
		}
		if games != "" {
			c.GamesBaseURL = games
		}
		if thumbnails != "" {
			c.ThumbnailsBaseURL = thumbnails
		}
	}
}

// New creates a Client with the production Roblox hosts.
func New(opts ...Option) *Client {
	c := &Client{
		UsersBaseURL:      "https://users.roblox.com",
		PresenceBaseURL:   "https://presence.roblox.com",
		GamesBaseURL:      "https://games.roblox.com",
		ThumbnailsBaseURL: "https://thumbnails.roblox.com",
		httpClient:        &http.Client{Timeout: 10 * time.Second},
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveUser resolves a username to its account via the batch username
// lookup, excluding banned accounts.
func (c *Client) ResolveUser(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}

	reqBody := usernamesRequest{Usernames: []string{username}, ExcludeBannedUsers: true}
	var resp usernamesResponse
	if err := c.postJSON(ctx, c.UsersBaseURL+"/v1/usernames/users", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("resolving username %q: %w", username, err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrUserNotFound
	}

	u := resp.Data[0]
	return &User{ID: u.ID, Name: u.Name, DisplayName: u.DisplayName}, nil
}

// FetchPresence returns the current presence record for a user ID.
func (c *Client) FetchPresence(ctx context.Context, userID int64) (*Presence, error) {
	reqBody := presenceRequest{UserIDs: []int64{userID}}
	var resp presenceResponse
	if err := c.postJSON(ctx, c.PresenceBaseURL+"/v1/presence/users", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("fetching presence for user %d: %w", userID, err)
	}
	if len(resp.UserPresences) == 0 {
		return nil, fmt.Errorf("presence response for user %d contained no entries", userID)
	}

	p := resp.UserPresences[0]
	return &Presence{Type: p.UserPresenceType, PlaceID: p.PlaceID, UniverseID: p.UniverseID}, nil
}

// FetchGameName resolves a universe ID to the game's display name. An empty
// result set or an empty name returns an error so the caller can fall back
// to a generic label.
func (c *Client) FetchGameName(ctx context.Context, universeID int64) (string, error) {
	url := fmt.Sprintf("%s/v1/games?universeIds=%d", c.GamesBaseURL, universeID)
	var resp gamesResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return "", fmt.Errorf("fetching game name for universe %d: %w", universeID, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].Name == "" {
		return "", fmt.Errorf("no game name for universe %d", universeID)
	}
	return resp.Data[0].Name, nil
}

// FetchAvatarURL returns the CDN URL of the user's 150x150 PNG headshot.
func (c *Client) FetchAvatarURL(ctx context.Context, userID int64) (string, error) {
	url := fmt.Sprintf("%s/v1/users/avatar-headshot?userIds=%d&size=150x150&format=Png", c.ThumbnailsBaseURL, userID)
	var resp thumbnailResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return "", fmt.Errorf("fetching avatar for user %d: %w", userID, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].ImageURL == "" {
		return "", fmt.Errorf("no avatar URL for user %d", userID)
	}
	return resp.Data[0].ImageURL, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the log, never for the caller.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("upstream returned non-200",
			"url", req.URL.String(), "status", resp.StatusCode, "body", string(snippet))
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
