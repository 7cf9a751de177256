package handlers

import (
	"sokoni/internal/dto"
	"sokoni/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService   *service.ChatService
	searchService *service.SearchService
	logger        *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, searchService *service.SearchService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		searchService: searchService,
		logger:        logger,
	}
}

// Query runs one conversational turn through the natural-language search
// pipeline. Pipeline failures surface as degraded 200 responses; only a
// missing message is a client error.
func (h *ChatHandler) Query(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	result := h.chatService.Query(c.Context(), req.SessionID, req.Message)

	h.logger.Info("Chat query handled",
		zap.String("session_id", result.SessionID),
		zap.Int("products", len(result.Products)),
	)
	return c.JSON(result)
}

// SemanticSearch ranks products by embedding distance to the query text,
// falling back to keyword search when the vector path is unavailable.
func (h *ChatHandler) SemanticSearch(c *fiber.Ctx) error {
	var req dto.SemanticSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query is required",
		})
	}

	products := h.searchService.Search(c.Context(), req.Query, req.Limit)

	return c.JSON(dto.SemanticSearchResponse{Products: products})
}
