package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/social-network/internal/config"
	"github.com/iliyamo/social-network/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/social-network/internal/middleware" // import middleware for JWT authentication and rate limiting
)

// Handlers groups every handler the router wires up.
type Handlers struct {
	Auth  *handler.AuthHandler
	Users *handler.UserHandler
	Posts *handler.PostHandler
	Files *handler.FileHandler
}

// Register wires all routes onto the provided Echo instance.  Public
// endpoints (health, registration, login, browsing) take no middleware
// beyond the optional rate limiter on the credential endpoints; every
// mutating or identity-bearing endpoint sits behind JWTAuth.
func Register(e *echo.Echo, cfg config.Config, rlCfg config.RateLimitConfig, rdb *redis.Client, h Handlers) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	jwtAuth := middleware.JWTAuth(cfg)
	limited := middleware.NewRateLimiter(rlCfg, rdb)

	// Authentication.  Login is rate limited because it accepts
	// credentials; /v1/auth (me) requires a valid token.
	e.POST("/v1/auth/login", h.Auth.Login, limited)
	e.GET("/v1/auth", h.Auth.Me, jwtAuth)
	e.PUT("/v1/auth/password", h.Auth.ChangePassword, jwtAuth)

	// Users and the follow graph.  Registration shares the credential
	// rate limiter.  Follow mutations act on the authenticated user's own
	// out-edges, so they sit behind JWTAuth; reads are public.
	e.POST("/v1/users", h.Users.Register, limited)
	e.GET("/v1/users", h.Users.List)
	e.GET("/v1/users/:userId", h.Users.Get)
	e.GET("/v1/users/:userId/posts", h.Users.ListPosts)
	e.GET("/v1/users/:userId/followers", h.Users.Followers)
	e.GET("/v1/users/:userId/following", h.Users.Following)
	e.GET("/v1/users/:userId/following/:otherId", h.Users.HasFollow)
	e.POST("/v1/users/:userId/following/:otherId", h.Users.Follow, jwtAuth)
	e.DELETE("/v1/users/:userId/following/:otherId", h.Users.Unfollow, jwtAuth)
	e.POST("/v1/users/avatar", h.Users.UploadAvatar, jwtAuth)

	// Avatar blobs.
	e.GET("/v1/files/:fileId", h.Files.Get)

	// Posts, feed and engagement.
	e.GET("/v1/posts/news", h.Posts.News, jwtAuth)
	e.POST("/v1/posts", h.Posts.Create, jwtAuth)
	e.GET("/v1/posts/:postId", h.Posts.Get)
	e.DELETE("/v1/posts/:postId", h.Posts.Delete, jwtAuth)
	e.GET("/v1/posts/:postId/comments", h.Posts.Comments)
	e.POST("/v1/posts/:postId/comments", h.Posts.AddComment, jwtAuth)
	e.DELETE("/v1/posts/:postId/comments/:commentId", h.Posts.RemoveComment, jwtAuth)
	e.GET("/v1/posts/:postId/likes", h.Posts.Likes)
	e.POST("/v1/posts/:postId/likes", h.Posts.AddLike, jwtAuth)
	e.DELETE("/v1/posts/:postId/likes", h.Posts.RemoveLike, jwtAuth)
}
