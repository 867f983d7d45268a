package handler

import (
	"github.com/labstack/echo/v4"

	"voltbay/internal/usecase"
	"voltbay/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type getOrCreateGroupRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type sendMessageRequest struct {
	ChatGroupID string `json:"chatGroupId" validate:"required"`
	Message     string `json:"message" validate:"required"`
}

// GetOrCreateGroup opens or reuses the chat group for (product, viewer).
func (h *ChatHandler) GetOrCreateGroup(c echo.Context) error {
	var req getOrCreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	group, err := h.chatUseCase.GetOrCreateGroup(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{
		"success":   true,
		"chatGroup": group,
	})
}

// MyChats lists every chat group the authenticated user participates in.
func (h *ChatHandler) MyChats(c echo.Context) error {
	userID := c.Get("uid").(string)

	chats, err := h.chatUseCase.MyChats(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{
		"chats": chats,
	})
}

// ChatInfo returns one chat group's metadata for the viewer.
func (h *ChatHandler) ChatInfo(c echo.Context) error {
	chatID := c.Param("chatId")
	userID := c.Get("uid").(string)

	info, err := h.chatUseCase.ChatInfo(c.Request().Context(), userID, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{
		"chatInfo": info,
	})
}

// Messages returns the conversation in ascending order and marks it read.
func (h *ChatHandler) Messages(c echo.Context) error {
	chatID := c.Param("chatId")
	userID := c.Get("uid").(string)

	messages, err := h.chatUseCase.Messages(c.Request().Context(), userID, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{
		"messages": messages,
	})
}

// SendMessage appends a message to an open chat group.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	sent, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		ChatGroupID: req.ChatGroupID,
		Body:        req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, echo.Map{
		"success":     true,
		"sentMessage": sent,
	})
}

// CloseGroup is the seller-only terminal action on a conversation.
func (h *ChatHandler) CloseGroup(c echo.Context) error {
	chatID := c.Param("chatId")
	userID := c.Get("uid").(string)

	if err := h.chatUseCase.CloseGroup(c.Request().Context(), userID, chatID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{
		"success": true,
	})
}
