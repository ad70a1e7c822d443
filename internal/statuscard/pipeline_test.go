package statuscard

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/statuscard/internal/metrics"
	"github.com/youruser/statuscard/internal/roblox"
)

type fakeAPI struct {
	user        *roblox.User
	userErr     error
	presence    *roblox.Presence
	presenceErr error
	gameName    string
	gameErr     error
	avatarURL   string
	avatarErr   error

	gameCalls   int
	avatarCalls int
}

func (f *fakeAPI) ResolveUser(ctx context.Context, username string) (*roblox.User, error) {
	return f.user, f.userErr
}

func (f *fakeAPI) FetchPresence(ctx context.Context, userID int64) (*roblox.Presence, error) {
	return f.presence, f.presenceErr
}

func (f *fakeAPI) FetchGameName(ctx context.Context, universeID int64) (string, error) {
	f.gameCalls++
	return f.gameName, f.gameErr
}

func (f *fakeAPI) FetchAvatarURL(ctx context.Context, userID int64) (string, error) {
	f.avatarCalls++
	return f.avatarURL, f.avatarErr
}

type fakeImages struct {
	img image.Image
	err error
}

func (f *fakeImages) Fetch(ctx context.Context, url string) (image.Image, error) {
	return f.img, f.err
}

func solidImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 150, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 150; x++ {
			img.Set(x, y, color.NRGBA{R: 0xaa, G: 0x11, B: 0x11, A: 0xff})
		}
	}
	return img
}

func newTestPipeline(api RobloxAPI, images ImageFetcher) *Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(api, images, logger, metrics.New())
}

func requireCardPNG(t *testing.T, data []byte) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestGenerateEmptyUsername(t *testing.T) {
	api := &fakeAPI{}
	p := newTestPipeline(api, &fakeImages{})

	_, err := p.Generate(context.Background(), "")
	assert.ErrorIs(t, err, roblox.ErrEmptyUsername)
	assert.Zero(t, api.avatarCalls)
}

func TestGenerateUserNotFound(t *testing.T) {
	p := newTestPipeline(&fakeAPI{userErr: roblox.ErrUserNotFound}, &fakeImages{})

	_, err := p.Generate(context.Background(), "nosuchuser")
	assert.ErrorIs(t, err, roblox.ErrUserNotFound)
}

func TestGeneratePresenceFailureIsFatal(t *testing.T) {
	api := &fakeAPI{
		user:        &roblox.User{ID: 1, Name: "builderman", DisplayName: "Builderman"},
		presenceErr: errors.New("presence service down"),
		avatarURL:   "https://cdn.example.com/a.png",
	}
	p := newTestPipeline(api, &fakeImages{img: solidImage()})

	_, err := p.Generate(context.Background(), "builderman")
	assert.ErrorContains(t, err, "presence service down")
}

func TestGenerateOfflineCard(t *testing.T) {
	api := &fakeAPI{
		user:      &roblox.User{ID: 1, Name: "builderman", DisplayName: "Builderman"},
		presence:  &roblox.Presence{Type: 0},
		avatarURL: "https://cdn.example.com/a.png",
	}
	p := newTestPipeline(api, &fakeImages{img: solidImage()})

	data, err := p.Generate(context.Background(), "builderman")
	require.NoError(t, err)
	requireCardPNG(t, data)
	assert.Zero(t, api.gameCalls, "game lookup must not run while offline")
}

func TestGenerateInGameWithName(t *testing.T) {
	api := &fakeAPI{
		user:      &roblox.User{ID: 1, Name: "builderman", DisplayName: "Builderman"},
		presence:  &roblox.Presence{Type: 2, PlaceID: 920587237, UniverseID: 383310974},
		gameName:  "Adopt Me!",
		avatarURL: "https://cdn.example.com/a.png",
	}
	p := newTestPipeline(api, &fakeImages{img: solidImage()})

	data, err := p.Generate(context.Background(), "builderman")
	require.NoError(t, err)
	requireCardPNG(t, data)
	assert.Equal(t, 1, api.gameCalls)
}

func TestGenerateGameLookupFailureDegrades(t *testing.T) {
	api := &fakeAPI{
		user:      &roblox.User{ID: 1, Name: "builderman", DisplayName: "Builderman"},
		presence:  &roblox.Presence{Type: 2, UniverseID: 383310974},
		gameErr:   errors.New("games service down"),
		avatarURL: "https://cdn.example.com/a.png",
	}
	p := newTestPipeline(api, &fakeImages{img: solidImage()})

	data, err := p.Generate(context.Background(), "builderman")
	require.NoError(t, err, "a failed game lookup must not fail the card")
	requireCardPNG(t, data)
}

func TestGenerateInGameWithoutUniverseSkipsLookup(t *testing.T) {
	api := &fakeAPI{
		user:      &roblox.User{ID: 1, Name: "builderman", DisplayName: "Builderman"},
		presence:  &roblox.Presence{Type: 2},
		avatarURL: "https://cdn.example.com/a.png",
	}
	p := newTestPipeline(api, &fakeImages{img: solidImage()})

	data, err := p.Generate(context.Background(), "builderman")
	require.NoError(t, err)
	requireCardPNG(t, data)
	assert.Zero(t, api.gameCalls, "no universe ID, nothing to look up")
}

func TestGenerateAvatarFailureDegrades(t *testing.T) {
	tests := []struct {
		name   string
		api    *fakeAPI
		images *fakeImages
	}{
		{
			name: "url lookup fails",
			api: &fakeAPI{
				user:      &roblox.User{ID: 1, Name: "b", DisplayName: "B"},
				presence:  &roblox.Presence{Type: 1},
				avatarErr: errors.New("thumbnails down"),
			},
			images: &fakeImages{},
		},
		{
			name: "download fails",
			api: &fakeAPI{
				user:      &roblox.User{ID: 1, Name: "b", DisplayName: "B"},
				presence:  &roblox.Presence{Type: 1},
				avatarURL: "https://cdn.example.com/a.png",
			},
			images: &fakeImages{err: errors.New("cdn down")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(tt.api, tt.images)
			data, err := p.Generate(context.Background(), "b")
			require.NoError(t, err, "a missing avatar must not fail the card")
			requireCardPNG(t, data)
		})
	}
}

func TestGenerateUnknownPresenceCode(t *testing.T) {
	api := &fakeAPI{
		user:      &roblox.User{ID: 1, Name: "b", DisplayName: "B"},
		presence:  &roblox.Presence{Type: 7},
		avatarURL: "https://cdn.example.com/a.png",
	}
	p := newTestPipeline(api, &fakeImages{img: solidImage()})

	data, err := p.Generate(context.Background(), "b")
	require.NoError(t, err, "unknown presence codes render as offline, never crash")
	requireCardPNG(t, data)
	assert.Zero(t, api.gameCalls)
}
