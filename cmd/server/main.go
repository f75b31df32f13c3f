package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-network/internal/config"
	"github.com/iliyamo/social-network/internal/database"
	"github.com/iliyamo/social-network/internal/handler"
	"github.com/iliyamo/social-network/internal/queue"
	"github.com/iliyamo/social-network/internal/repository"
	"github.com/iliyamo/social-network/internal/router"
	"github.com/iliyamo/social-network/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	follows := repository.NewFollowRepo(db)
	posts := repository.NewPostRepo(db)
	engagement := repository.NewEngagementRepo(db)
	files := repository.NewFileRepo(db)

	rdb := config.NewRedisClient() // nil disables rate limiting
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	h := router.Handlers{
		Auth:  handler.NewAuthHandler(cfg, users),
		Users: handler.NewUserHandler(cfg, users, follows, posts, files),
		Posts: handler.NewPostHandler(posts, engagement, service.NewPublisher()),
		Files: handler.NewFileHandler(files),
	}

	e := echo.New()
	router.Register(e, cfg, config.LoadRateLimitConfig(), rdb, h)

	// The notification consumer keeps its own reconnect loop.
	go func() {
		if err := queue.StartPostCreatedConsumer(); err != nil {
			log.Printf("post-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
