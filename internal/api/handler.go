package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hnsync/domain"
)

const (
	defaultK = 30
	maxK     = 500
)

type StoryStore interface {
	ListLatest(ctx context.Context, limit int) ([]domain.Story, error)
	GetStory(ctx context.Context, id int64) (domain.Story, error)
	VoteCounts(ctx context.Context, ids []int64) (map[int64]domain.VoteCounts, error)
}

type StoryHandler struct {
	store StoryStore
}

func NewStoryHandler(store StoryStore) *StoryHandler {
	return &StoryHandler{store: store}
}

// GetNewsfeed returns the latest k stories, newest first, with vote counts.
func (h *StoryHandler) GetNewsfeed(c *gin.Context) {
	k := getQueryK(c)

	stories, err := h.store.ListLatest(c.Request.Context(), k)
	if err != nil {
		slog.Error("error fetching newsfeed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	ids := make([]int64, 0, len(stories))
	for _, s := range stories {
		ids = append(ids, s.ID)
	}
	counts, err := h.store.VoteCounts(c.Request.Context(), ids)
	if err != nil {
		slog.Error("error fetching vote counts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]StoryResponse, 0, len(stories))
	for _, s := range stories {
		res = append(res, toResponse(s, counts[s.ID]))
	}
	c.JSON(http.StatusOK, res)
}

func (h *StoryHandler) GetStory(c *gin.Context) {
	id := c.Param("id")

	storyID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Warn("invalid story id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story id"})
		return
	}

	story, err := h.store.GetStory(c.Request.Context(), storyID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if err != nil {
		slog.Error("error fetching story", "error", err, "story_id", storyID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	counts, err := h.store.VoteCounts(c.Request.Context(), []int64{storyID})
	if err != nil {
		slog.Error("error fetching vote counts", "error", err, "story_id", storyID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toResponse(story, counts[storyID]))
}

func (h *StoryHandler) GetHealth(c *gin.Context) {
	if _, err := h.store.ListLatest(c.Request.Context(), 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func toResponse(s domain.Story, v domain.VoteCounts) StoryResponse {
	return StoryResponse{
		ID:       s.ID,
		Title:    s.Title,
		URL:      s.URL,
		By:       s.Submitter,
		Score:    s.Score,
		Time:     s.SubmittedAt,
		Likes:    v.Likes,
		Dislikes: v.Dislikes,
	}
}

func getQueryK(c *gin.Context) int {
	raw := c.Query("k")
	if raw == "" {
		return defaultK
	}

	k, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", "k", "value", raw, "error", err)
		return defaultK
	}
	if k < 1 {
		return 1
	}
	if k > maxK {
		slog.Warn("query parameter exceeds max, clamping", "param", "k", "value", k, "max", maxK)
		return maxK
	}
	return k
}
