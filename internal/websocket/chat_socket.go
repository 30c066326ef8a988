package chatws

import (
	"context"
	"log"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/tida-sports/AcademyBotBack/internal/services"
)

type responder interface {
	Respond(ctx context.Context, input services.ChatInput) (string, error)
}

// ChatSocket serves the assistant over a websocket: each connection is an
// independent conversation loop of request frame in, reply frame out. There
// is no cross-connection delivery, so no hub sits behind it.
type ChatSocket struct {
	service responder
}

type chatFrame struct {
	Message   string  `json:"message"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type replyFrame struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

func NewChatSocket(service responder) *ChatSocket {
	return &ChatSocket{service: service}
}

func (s *ChatSocket) Handle(conn *websocket.Conn) {
	defer conn.Close()

	for {
		var frame chatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		if strings.TrimSpace(frame.Message) == "" {
			if err := conn.WriteJSON(replyFrame{Error: "message is required"}); err != nil {
				return
			}
			continue
		}

		reply, err := s.service.Respond(context.Background(), services.ChatInput{
			Message:   frame.Message,
			Latitude:  frame.Latitude,
			Longitude: frame.Longitude,
		})
		if err != nil {
			log.Printf("ws chat: %v", err)
			if err := conn.WriteJSON(replyFrame{Error: "Failed to process chat request"}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(replyFrame{Reply: reply}); err != nil {
			return
		}
	}
}
