package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/llamabot/llamabot/internal/chat"
	"github.com/llamabot/llamabot/internal/common"
	"gorm.io/gorm"
)

type sendMessageReq struct {
	Message string `json:"message" binding:"required"`
	Model   string `json:"model" binding:"required"`
}

// SendMessage runs one full turn: persist the user message, call the
// provider with the whole transcript, persist the reply. The provider call
// is fail-soft; a failed completion still produces a stored fallback turn.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "message and model required")
		return
	}

	ctx := c.Request.Context()

	userMsg, err := h.Session.RecordUserTurn(ctx, req.Message, req.Model)
	if err != nil {
		log.Printf("[SendMessage] store user turn failed err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to store message")
		return
	}

	reply := h.Groq.Complete(ctx, req.Model, h.Session.BuildRequestContext())

	assistantMsg, err := h.Session.RecordAssistantTurn(ctx, reply, req.Model)
	if err != nil {
		log.Printf("[SendMessage] store assistant turn failed err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to store reply")
		return
	}

	common.OK(c, gin.H{
		"user_message_id":      userMsg.ID,
		"assistant_message_id": assistantMsg.ID,
		"reply":                reply,
	})
}

// History returns the transcript, filtered by ?q= when present. No query
// means the full transcript; a query with no hits is an empty list.
func (h *Handler) History(c *gin.Context) {
	query := c.Query("q")
	var msgs []chat.ChatMessage
	if query == "" {
		msgs = h.Session.Transcript()
	} else {
		msgs = h.Session.Search(query)
	}
	common.OK(c, gin.H{"messages": msgs})
}

func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.Session.Clear(c.Request.Context()); err != nil {
		log.Printf("[ClearHistory] failed err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to clear history")
		return
	}
	common.OK(c, gin.H{"cleared": true})
}

type feedbackReq struct {
	MessageID  uint64 `json:"message_id" binding:"required"`
	IsPositive *bool  `json:"is_positive" binding:"required"`
	Comment    string `json:"comment"`
}

func (h *Handler) SaveFeedback(c *gin.Context) {
	var req feedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "message_id and is_positive required")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.Repo.MessageByID(ctx, req.MessageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40401, "message not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to look up message")
		return
	}

	if err := h.Repo.UpsertFeedback(ctx, req.MessageID, *req.IsPositive, req.Comment); err != nil {
		log.Printf("[SaveFeedback] failed message_id=%d err=%v", req.MessageID, err)
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to save feedback")
		return
	}
	common.OK(c, gin.H{"message_id": req.MessageID})
}
