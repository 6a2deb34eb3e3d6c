package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/llamabot/llamabot/internal/common"
)

// Transcribe saves the uploaded audio verbatim under the uploads dir, then
// sends it to the provider's transcription endpoint. The saved file is the
// durable copy; the transcription result is never persisted.
func (h *Handler) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10002, "audio file required")
		return
	}
	language := strings.TrimSpace(c.PostForm("language"))
	model := strings.TrimSpace(c.PostForm("model"))

	id, err := common.NewULID()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50004, "internal error")
		return
	}

	if err := os.MkdirAll(h.Cfg.UploadsDir, 0o755); err != nil {
		log.Printf("[Transcribe] mkdir %s failed err=%v", h.Cfg.UploadsDir, err)
		common.Fail(c, http.StatusInternalServerError, 50004, "failed to save upload")
		return
	}
	savedPath := filepath.Join(h.Cfg.UploadsDir, id+"_"+filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, savedPath); err != nil {
		log.Printf("[Transcribe] save %s failed err=%v", savedPath, err)
		common.Fail(c, http.StatusInternalServerError, 50004, "failed to save upload")
		return
	}

	f, err := os.Open(savedPath)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50004, "failed to read upload")
		return
	}
	defer f.Close()

	text, err := h.Groq.Transcribe(c.Request.Context(), f, fileHeader.Filename, model, language)
	if err != nil {
		log.Printf("[Transcribe] provider failed file=%s err=%v", savedPath, err)
		common.Fail(c, http.StatusBadGateway, 50201, "transcription failed")
		return
	}

	common.OK(c, gin.H{
		"text": text,
		"file": savedPath,
	})
}
