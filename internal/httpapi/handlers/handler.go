package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/llamabot/llamabot/internal/catalog"
	"github.com/llamabot/llamabot/internal/chat"
	"github.com/llamabot/llamabot/internal/common"
	"github.com/llamabot/llamabot/internal/config"
	"github.com/llamabot/llamabot/internal/provider"
)

type Handler struct {
	Cfg     config.Config
	Session *chat.Session
	Repo    *chat.Repo
	Catalog *catalog.Catalog
	Groq    *provider.Client
}

func NewHandler(cfg config.Config, session *chat.Session, repo *chat.Repo, cat *catalog.Catalog, groq *provider.Client) *Handler {
	return &Handler{
		Cfg:     cfg,
		Session: session,
		Repo:    repo,
		Catalog: cat,
		Groq:    groq,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

func (h *Handler) ListModels(c *gin.Context) {
	models := h.Catalog.List(c.Request.Context())
	common.OK(c, gin.H{"models": models})
}
