package api

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{"http://localhost:3000"}

// NewRouter wires the read-only endpoints. An empty origins list allows the
// local frontend only.
func NewRouter(store StoryStore, origins []string) *gin.Engine {
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	slog.Info("allowed CORS origins", "urls", origins)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	h := NewStoryHandler(store)
	r.GET("/newsfeed", h.GetNewsfeed)
	r.GET("/stories/:id", h.GetStory)
	r.GET("/health", h.GetHealth)
	return r
}
