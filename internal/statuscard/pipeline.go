// Package statuscard orchestrates the lookups behind a status card:
// resolve the username, then fetch presence (and the game name while
// in-game) and the avatar concurrently, then render.
//
// Identity and presence lookups are load-bearing: their failure fails the
// request. The game name and avatar are enrichments: any failure there
// degrades the card instead of failing it.
package statuscard

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/youruser/statuscard/internal/card"
	"github.com/youruser/statuscard/internal/metrics"
	"github.com/youruser/statuscard/internal/roblox"
)

// UserResolver resolves a username to an account.
type UserResolver interface {
	ResolveUser(ctx context.Context, username string) (*roblox.User, error)
}

// PresenceFetcher returns the raw presence record for a user ID.
type PresenceFetcher interface {
	FetchPresence(ctx context.Context, userID int64) (*roblox.Presence, error)
}

// GameResolver resolves a universe ID to a game name.
type GameResolver interface {
	FetchGameName(ctx context.Context, universeID int64) (string, error)
}

// AvatarURLFetcher returns the headshot URL for a user ID.
type AvatarURLFetcher interface {
	FetchAvatarURL(ctx context.Context, userID int64) (string, error)
}

// ImageFetcher downloads and decodes a bitmap.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// RobloxAPI is the full upstream surface the pipeline needs; *roblox.Client
// satisfies it.
type RobloxAPI interface {
	UserResolver
	PresenceFetcher
	GameResolver
	AvatarURLFetcher
}

// Pipeline generates status cards.
type Pipeline struct {
	api     RobloxAPI
	images  ImageFetcher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a Pipeline.
func New(api RobloxAPI, images ImageFetcher, logger *slog.Logger, m *metrics.Metrics) *Pipeline {
	return &Pipeline{api: api, images: images, logger: logger, metrics: m}
}

// Generate renders the status card PNG for a username.
//
// Error mapping for callers: roblox.ErrEmptyUsername for a blank username,
// roblox.ErrUserNotFound when the name resolves to nothing, anything else
// is an upstream or render failure.
func (p *Pipeline) Generate(ctx context.Context, username string) ([]byte, error) {
	if username == "" {
		return nil, roblox.ErrEmptyUsername
	}

	user, err := p.api.ResolveUser(ctx, username)
	if err != nil {
		if !errors.Is(err, roblox.ErrUserNotFound) {
			p.metrics.UpstreamFailures.WithLabelValues("users").Inc()
		}
		return nil, err
	}

	// The presence chain and the avatar chain only depend on the resolved
	// user, so they run concurrently.
	var (
		wg          sync.WaitGroup
		presence    card.Presence
		gameName    string
		presenceErr error
		avatar      image.Image
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		presence, gameName, presenceErr = p.fetchPresenceChain(ctx, user.ID)
	}()
	go func() {
		defer wg.Done()
		avatar = p.fetchAvatar(ctx, user.ID)
	}()
	wg.Wait()

	if presenceErr != nil {
		p.metrics.UpstreamFailures.WithLabelValues("presence").Inc()
		return nil, presenceErr
	}

	start := time.Now()
	png, err := card.Render(card.Info{
		DisplayName: user.DisplayName,
		Username:    user.Name,
		Presence:    presence,
		GameName:    gameName,
		Avatar:      avatar,
	})
	if err != nil {
		return nil, err
	}
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	return png, nil
}

// fetchPresenceChain fetches presence and, while in-game with a known
// universe, the game name. The name lookup is best-effort: any failure
// leaves it empty.
func (p *Pipeline) fetchPresenceChain(ctx context.Context, userID int64) (card.Presence, string, error) {
	raw, err := p.api.FetchPresence(ctx, userID)
	if err != nil {
		return card.PresenceUnknown, "", err
	}

	presence := card.PresenceFromCode(raw.Type)
	if presence != card.PresenceInGame || raw.UniverseID == 0 {
		return presence, "", nil
	}

	name, err := p.api.FetchGameName(ctx, raw.UniverseID)
	if err != nil {
		p.metrics.UpstreamFailures.WithLabelValues("games").Inc()
		p.logger.Warn("game name lookup failed, using generic label",
			"user_id", userID, "universe_id", raw.UniverseID, "error", err)
		return presence, "", nil
	}
	return presence, name, nil
}

// fetchAvatar fetches and decodes the headshot. Never fatal: any failure
// returns nil and the card renders without a portrait.
func (p *Pipeline) fetchAvatar(ctx context.Context, userID int64) image.Image {
	url, err := p.api.FetchAvatarURL(ctx, userID)
	if err != nil {
		p.metrics.UpstreamFailures.WithLabelValues("thumbnails").Inc()
		p.logger.Warn("avatar URL lookup failed, rendering without portrait", "user_id", userID, "error", err)
		return nil
	}
	img, err := p.images.Fetch(ctx, url)
	if err != nil {
		p.metrics.UpstreamFailures.WithLabelValues("avatar_cdn").Inc()
		p.logger.Warn("avatar download failed, rendering without portrait", "user_id", userID, "error", err)
		return nil
	}
	return img
}
