package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/statuscard/internal/api"
	"github.com/youruser/statuscard/internal/card"
	"github.com/youruser/statuscard/internal/config"
	imagepkg "github.com/youruser/statuscard/internal/image"
	"github.com/youruser/statuscard/internal/logging"
	"github.com/youruser/statuscard/internal/metrics"
	"github.com/youruser/statuscard/internal/roblox"
	"github.com/youruser/statuscard/internal/statuscard"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML server config")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}

	// Font initialization is best-effort: a missing custom font falls back
	// to the bundled ones.
	card.InitFonts(cfg.FontPath, logger)

	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	client := roblox.New(
		roblox.WithLogger(logger),
		roblox.WithTimeout(timeout),
		roblox.WithBaseURLs(
			cfg.Upstream.UsersBaseURL,
			cfg.Upstream.PresenceBaseURL,
			cfg.Upstream.GamesBaseURL,
			cfg.Upstream.ThumbnailsBaseURL,
		),
	)

	m := metrics.New()
	pipeline := statuscard.New(client, imagepkg.NewFetcher(timeout), logger, m)

	r := gin.Default()
	api.NewServer(pipeline, logger, m).RegisterRoutes(r)

	addr := cfg.Listener.Addr
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
