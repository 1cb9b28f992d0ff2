package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nccabhyas/ncc-training-backend/services"
)

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatInput struct {
	Message string     `json:"message"`
	Context []ChatTurn `json:"context"`
}

const chatSystemPrompt = `You are an assistant for NCC (National Cadet Corps) cadets.
Answer questions about NCC training, drill, weapon training, map reading,
camps, certificates and related subjects. Be concise and accurate.`

// Chat is a stateless single-turn pass-through to the AI collaborator. The
// client owns the transcript and resends whatever history it wants as
// context; JSON bodies carry {message, context?}, multipart bodies carry a
// PDF attachment whose text is prepended to the prompt.
func Chat(c *gin.Context) {
	var message string
	var turns []ChatTurn
	var attachmentText string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file attached"})
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		text, err := services.ExtractTextFromUpload(file, ext)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read attached file"})
			return
		}
		attachmentText = text
		message = c.PostForm("message")
		if message == "" {
			message = "Summarise this document for an NCC cadet."
		}
	} else {
		var input ChatInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if strings.TrimSpace(input.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		message = input.Message
		turns = input.Context
	}

	var prompt strings.Builder
	prompt.WriteString(chatSystemPrompt)
	prompt.WriteString("\n\n")
	if attachmentText != "" {
		fmt.Fprintf(&prompt, "The cadet attached a document. Its contents:\n%s\n\n", attachmentText)
	}
	for _, turn := range turns {
		fmt.Fprintf(&prompt, "%s: %s\n", turn.Role, turn.Content)
	}
	fmt.Fprintf(&prompt, "user: %s\nassistant:", message)

	reply, err := services.GenerateText(c.Request.Context(), prompt.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
