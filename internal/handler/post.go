package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-network/internal/queue"
	"github.com/iliyamo/social-network/internal/repository"
)

// maxPostChars bounds post and comment bodies.
const maxPostChars = 4000

// EventPublisher pushes domain events to the message broker.  A nil
// publisher disables eventing without touching the request flow.
type EventPublisher interface {
	PostCreated(ctx context.Context, ev queue.PostCreatedEvent) error
}

// PostHandler bundles the stores behind the post and engagement
// endpoints.
type PostHandler struct {
	Posts      repository.PostStore
	Engagement repository.EngagementLedger
	Events     EventPublisher
}

func NewPostHandler(posts repository.PostStore, engagement repository.EngagementLedger, events EventPublisher) *PostHandler {
	return &PostHandler{Posts: posts, Engagement: engagement, Events: events}
}

type createPostReq struct {
	Text string `json:"text"`
}

type createCommentReq struct {
	Text string `json:"text"`
}

// News returns the authenticated user's feed: their own posts merged with
// the posts of everyone they follow, newest first, with live engagement
// counters.
func (h *PostHandler) News(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	feed, err := h.Posts.Feed(ctx, uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, feed)
}

// Create stores a new post owned by the caller and publishes a
// post.created event.  Broker trouble is logged, never surfaced.
func (h *PostHandler) Create(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createPostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" || len(req.Text) > maxPostChars {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text must be 1-4000 characters"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	post, err := h.Posts.Create(ctx, uid, req.Text)
	if err != nil {
		return fail(c, err)
	}

	if h.Events != nil {
		ev := queue.PostCreatedEvent{
			PostID:    post.ID,
			AuthorID:  post.Author.ID,
			Text:      post.Text,
			CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := h.Events.PostCreated(ctx, ev); err != nil {
			log.Printf("post.created publish failed: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, post)
}

// Get returns a single post with derived counters.
func (h *PostHandler) Get(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes the caller's post together with its comments and likes.
func (h *PostHandler) Delete(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Posts.Delete(ctx, postID, uid); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Comments lists a post's comments oldest first.
func (h *PostHandler) Comments(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	comments, err := h.Engagement.Comments(ctx, postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// AddComment appends the caller's comment to a post.
func (h *PostHandler) AddComment(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req createCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" || len(req.Text) > maxPostChars {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text must be 1-4000 characters"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	comment, err := h.Engagement.AddComment(ctx, postID, uid, req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// RemoveComment deletes a comment; only its author may do so.
func (h *PostHandler) RemoveComment(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Engagement.RemoveComment(ctx, commentID, postID, uid); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Likes lists a post's likes.
func (h *PostHandler) Likes(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	likes, err := h.Engagement.Likes(ctx, postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, likes)
}

// AddLike records the caller's like.  Liking twice returns the existing
// like with 200 instead of an error.
func (h *PostHandler) AddLike(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	like, err := h.Engagement.AddLike(ctx, postID, uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, like)
}

// RemoveLike deletes the caller's like from a post.
func (h *PostHandler) RemoveLike(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Engagement.RemoveLike(ctx, postID, uid); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
