package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"app/chat"
	"app/models"
	"app/session"
)

// contextWindow bounds how many prior turns are passed into resolution, so
// one long session cannot bleed stale topics into every answer.
const contextWindow = 10

// ChatHandler serves the chat session endpoints.
type ChatHandler struct {
	Svc      *chat.Service
	Sessions session.Store
}

// NewChatHandler wires a ChatHandler.
func NewChatHandler(svc *chat.Service, sessions session.Store) *ChatHandler {
	return &ChatHandler{Svc: svc, Sessions: sessions}
}

// HandleCreateChat creates a new chat session.
// POST /api/v1/chats
func (h *ChatHandler) HandleCreateChat(c *fiber.Ctx) error {
	s := h.Sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "chat_id": s.ID, "chat": s})
}

// HandleListChats lists all chat sessions, newest first.
// GET /api/v1/chats
func (h *ChatHandler) HandleListChats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "chats": h.Sessions.List()})
}

// HandleGetChat fetches a single chat session.
// GET /api/v1/chats/:chatId
func (h *ChatHandler) HandleGetChat(c *fiber.Ctx) error {
	s, err := h.Sessions.Get(c.Params("chatId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Chat session not found"})
	}
	return c.JSON(fiber.Map{"success": true, "chat": s})
}

// SendMessageInput is the body for posting a message to a chat.
type SendMessageInput struct {
	Message  string `json:"message"`
	Followup bool   `json:"followup"`
}

// HandleSendMessage appends a user turn, runs the pipeline over the recent
// turns, and appends the assistant's reply.
// POST /api/v1/chats/:chatId/messages
func (h *ChatHandler) HandleSendMessage(c *fiber.Ctx) error {
	var input SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Message cannot be empty"})
	}

	s, err := h.Sessions.Get(c.Params("chatId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Chat session not found"})
	}

	log.Printf("Processing message for chat %s: %s", s.ID, message)

	// The pipeline sees the turns before this message, bounded to the most
	// recent ones.
	history := s.Messages
	if len(history) > contextWindow {
		history = history[len(history)-contextWindow:]
	}

	userMsg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   message,
		Timestamp: time.Now(),
	}
	s.Messages = append(s.Messages, userMsg)

	reply := h.Svc.Answer(c.Context(), message, history, input.Followup)

	aiMsg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}
	s.Messages = append(s.Messages, aiMsg)

	if len(s.Messages) <= 2 {
		s.Title = message
		if len(s.Title) > 30 {
			s.Title = s.Title[:30] + "..."
		}
	}

	if err := h.Sessions.Put(s); err != nil {
		log.Printf("Error storing chat session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to store chat session"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"user_message": userMsg,
		"ai_response":  aiMsg,
		"chat":         s,
	})
}

// HandleDeleteChat removes one chat session.
// DELETE /api/v1/chats/:chatId
func (h *ChatHandler) HandleDeleteChat(c *fiber.Ctx) error {
	if err := h.Sessions.Delete(c.Params("chatId")); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Chat session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Chat deleted successfully"})
}

// HandleClearChats removes every chat session.
// DELETE /api/v1/chats
func (h *ChatHandler) HandleClearChats(c *fiber.Ctx) error {
	h.Sessions.Clear()
	return c.JSON(fiber.Map{"success": true, "message": "All chat sessions cleared successfully"})
}
