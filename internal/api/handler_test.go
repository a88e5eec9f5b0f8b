package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"hnsync/domain"
)

type fakeStore struct {
	stories   []domain.Story
	counts    map[int64]domain.VoteCounts
	err       error
	lastLimit int
}

func (f *fakeStore) ListLatest(_ context.Context, limit int) ([]domain.Story, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.stories) {
		return f.stories[:limit], nil
	}
	return f.stories, nil
}

func (f *fakeStore) GetStory(_ context.Context, id int64) (domain.Story, error) {
	if f.err != nil {
		return domain.Story{}, f.err
	}
	for _, s := range f.stories {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Story{}, sql.ErrNoRows
}

func (f *fakeStore) VoteCounts(_ context.Context, ids []int64) (map[int64]domain.VoteCounts, error) {
	return f.counts, f.err
}

func newTestRouter(store StoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(store, []string{"http://frontend.test"})
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

var sample = []domain.Story{
	{ID: 103, Submitter: "bob", Score: 5, SubmittedAt: "2023-11-14T22:15:00Z"},
	{ID: 101, Title: "A", URL: "http://a", Submitter: "alice", Score: 10, SubmittedAt: "2023-11-14T22:13:20Z"},
}

func TestGetNewsfeed_ReturnsStoriesWithCounts(t *testing.T) {
	store := &fakeStore{stories: sample, counts: map[int64]domain.VoteCounts{101: {Likes: 2, Dislikes: 1}}}
	r := newTestRouter(store)

	w := get(r, "/newsfeed?k=10")

	assert.Equal(t, http.StatusOK, w.Code)
	var res []StoryResponse
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, len(res))
	assert.Equal(t, StoryResponse{ID: 103, By: "bob", Score: 5, Time: "2023-11-14T22:15:00Z"}, res[0])
	assert.Equal(t, StoryResponse{ID: 101, Title: "A", URL: "http://a", By: "alice", Score: 10, Time: "2023-11-14T22:13:20Z", Likes: 2, Dislikes: 1}, res[1])
	assert.Equal(t, 10, store.lastLimit)
}

func TestGetNewsfeed_EmptyIsArray(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := get(r, "/newsfeed")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetNewsfeed_KParameter(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", defaultK},
		{"?k=abc", defaultK},
		{"?k=0", 1},
		{"?k=-4", 1},
		{"?k=1000", maxK},
		{"?k=25", 25},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			store := &fakeStore{}
			get(newTestRouter(store), "/newsfeed"+tt.query)
			assert.Equal(t, tt.want, store.lastLimit)
		})
	}
}

func TestGetNewsfeed_DBError(t *testing.T) {
	r := newTestRouter(&fakeStore{err: errors.New("DB down")})

	w := get(r, "/newsfeed")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetStory(t *testing.T) {
	r := newTestRouter(&fakeStore{stories: sample, counts: map[int64]domain.VoteCounts{101: {Likes: 4}}})

	w := get(r, "/stories/101")
	assert.Equal(t, http.StatusOK, w.Code)
	var res StoryResponse
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "alice", res.By)
	assert.Equal(t, 4, res.Likes)

	assert.Equal(t, http.StatusNotFound, get(r, "/stories/999").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/stories/abc").Code)
}

func TestGetStory_DBError(t *testing.T) {
	r := newTestRouter(&fakeStore{err: errors.New("DB down")})

	assert.Equal(t, http.StatusInternalServerError, get(r, "/stories/1").Code)
}

func TestGetHealth(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(newTestRouter(&fakeStore{}), "/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(newTestRouter(&fakeStore{err: errors.New("down")}), "/health").Code)
}

func TestCORS_AllowedOrigin(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://frontend.test")
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://frontend.test", w.Header().Get("Access-Control-Allow-Origin"))
}
