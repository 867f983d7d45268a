package router

import (
	"github.com/labstack/echo/v4"

	"voltbay/internal/adapter/api/handler"
	"voltbay/internal/adapter/api/middleware"
)

// SetupChatRouter wires the chat endpoints. All of them require authentication.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/chat")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("/get-or-create-group", chatHandler.GetOrCreateGroup) // POST /chat/get-or-create-group
	chatGroup.GET("/my-chats", chatHandler.MyChats)                      // GET /chat/my-chats
	chatGroup.GET("/chat-info/:chatId", chatHandler.ChatInfo)            // GET /chat/chat-info/:chatId
	chatGroup.GET("/messages/:chatId", chatHandler.Messages)             // GET /chat/messages/:chatId
	chatGroup.POST("/send-message", chatHandler.SendMessage)             // POST /chat/send-message
	chatGroup.POST("/close-group/:chatId", chatHandler.CloseGroup)       // POST /chat/close-group/:chatId
}
