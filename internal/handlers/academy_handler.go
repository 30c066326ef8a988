package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tida-sports/AcademyBotBack/internal/models"
	"github.com/tida-sports/AcademyBotBack/internal/services"
)

type academyDirectory interface {
	FindNearby(ctx context.Context, lat, lng, radiusKM float64, limit int) ([]models.AcademyWithDistance, error)
	FindByName(ctx context.Context, fragment string) (*models.Academy, error)
	CountAcademies(ctx context.Context) (int, error)
}

type AcademyHandler struct {
	academies academyDirectory
	radiusKM  float64
}

func NewAcademyHandler(academies academyDirectory, radiusKM float64) *AcademyHandler {
	return &AcademyHandler{academies: academies, radiusKM: radiusKM}
}

func (h *AcademyHandler) ListNearby(c *fiber.Ctx) error {
	lat, err := parseFloat(c.Query("lat"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat must be a valid coordinate"})
	}
	lng, err := parseFloat(c.Query("lng"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lng must be a valid coordinate"})
	}

	radius := parsePositiveFloat(c.Query("radius"), h.radiusKM)
	limit := parsePositiveInt(c.Query("limit"), services.DefaultResultLimit)

	academies, err := h.academies.FindNearby(c.Context(), lat, lng, radius, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch academies"})
	}

	return c.JSON(fiber.Map{"academies": academies})
}

func (h *AcademyHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "q is required"})
	}

	academy, err := h.academies.FindByName(c.Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrAcademyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Academy not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search academies"})
	}

	return c.JSON(fiber.Map{"academy": academy})
}

func (h *AcademyHandler) Count(c *fiber.Ctx) error {
	count, err := h.academies.CountAcademies(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count academies"})
	}

	return c.JSON(fiber.Map{"count": count})
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, errInvalidNumber
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errInvalidNumber
	}
	return value, nil
}

func parsePositiveFloat(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

var errInvalidNumber = errors.New("invalid number")
