package routes

import (
	"context"
	"log"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tida-sports/AcademyBotBack/internal/config"
	"github.com/tida-sports/AcademyBotBack/internal/handlers"
	"github.com/tida-sports/AcademyBotBack/internal/llm"
	"github.com/tida-sports/AcademyBotBack/internal/models"
	"github.com/tida-sports/AcademyBotBack/internal/repository"
	"github.com/tida-sports/AcademyBotBack/internal/services"
	chatws "github.com/tida-sports/AcademyBotBack/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	academyRepo := repository.NewAcademyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	academyService := services.NewAcademyService(academyRepo)
	slotService := services.NewSlotService(bookingRepo)

	var extractor interface {
		Extract(ctx context.Context, message string) models.IntentRecord
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, intent extraction disabled")
		extractor = llm.DisabledExtractor{}
	} else {
		gemini, err := llm.NewGeminiExtractor(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			return err
		}
		extractor = gemini
	}

	chatService := services.NewChatService(
		extractor,
		academyService,
		slotService,
		cfg.SearchRadiusKM,
		cfg.DefaultResultLimit,
	)

	chatHandler := handlers.NewChatHandler(chatService)
	academyHandler := handlers.NewAcademyHandler(academyService, cfg.SearchRadiusKM)
	chatSocket := chatws.NewChatSocket(chatService)

	api := app.Group("/api")

	api.Post("/chat", chatHandler.Chat)

	academies := api.Group("/academies")
	academies.Get("/nearby", academyHandler.ListNearby)
	academies.Get("/search", academyHandler.Search)
	academies.Get("/count", academyHandler.Count)

	api.Use("/ws/chat", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/ws/chat", websocket.New(chatSocket.Handle))

	return nil
}
