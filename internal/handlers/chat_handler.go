package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tida-sports/AcademyBotBack/internal/services"
)

type chatResponder interface {
	Respond(ctx context.Context, input services.ChatInput) (string, error)
}

type ChatHandler struct {
	service chatResponder
}

type chatRequest struct {
	Message   string  `json:"message"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewChatHandler(service chatResponder) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
	}

	reply, err := h.service.Respond(c.Context(), services.ChatInput{
		Message:   req.Message,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return mapChatError(c, err)
	}

	return c.JSON(fiber.Map{"reply": reply})
}

func mapChatError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDate), errors.Is(err, services.ErrInvalidTime):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date or time"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process chat request"})
	}
}
