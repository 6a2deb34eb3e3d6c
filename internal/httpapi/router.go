package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/llamabot/llamabot/internal/catalog"
	"github.com/llamabot/llamabot/internal/chat"
	"github.com/llamabot/llamabot/internal/common"
	"github.com/llamabot/llamabot/internal/config"
	"github.com/llamabot/llamabot/internal/httpapi/handlers"
	"github.com/llamabot/llamabot/internal/httpapi/middleware"
	"github.com/llamabot/llamabot/internal/provider"
)

func NewRouter(cfg config.Config, session *chat.Session, repo *chat.Repo, cat *catalog.Catalog, groq *provider.Client) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(cfg, session, repo, cat, groq)

	r.GET("/ping", h.Ping)
	r.StaticFile("/", "web/index.html")

	api := r.Group("/api")
	api.GET("/models", h.ListModels)
	api.POST("/chat", h.SendMessage)
	api.GET("/history", h.History)
	api.DELETE("/history", h.ClearHistory)
	api.POST("/feedback", h.SaveFeedback)
	api.POST("/transcribe", h.Transcribe)

	return r
}
