package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltbay/internal/adapter/api"
	"voltbay/internal/domain/entity"
	"voltbay/internal/testutil"
	"voltbay/internal/usecase"
	"voltbay/pkg/chatclient"
)

// testAuth stands in for the Firebase middleware: the bearer token is taken
// as the user id directly.
func testAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}
		c.Set("uid", strings.TrimPrefix(header, "Bearer "))
		return next(c)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	chatRepo := testutil.NewMemoryChatRepository()
	userRepo := testutil.NewMemoryUserRepository()
	productRepo := testutil.NewMemoryProductRepository()

	userRepo.Add(&entity.User{ID: "seller-1", Username: "dana"})
	userRepo.Add(&entity.User{ID: "buyer-1", Username: "omar"})
	productRepo.Add(&entity.Product{ID: "prod-1", SellerID: "seller-1", Name: "Galaxy S23", Price: 420, Status: "available"})

	chatHandler := NewChatHandler(usecase.NewChatUseCase(chatRepo, userRepo, productRepo))

	e := echo.New()
	e.Validator = api.NewValidator()

	group := e.Group("/chat")
	group.Use(testAuth)
	group.POST("/get-or-create-group", chatHandler.GetOrCreateGroup)
	group.GET("/my-chats", chatHandler.MyChats)
	group.GET("/chat-info/:chatId", chatHandler.ChatInfo)
	group.GET("/messages/:chatId", chatHandler.Messages)
	group.POST("/send-message", chatHandler.SendMessage)
	group.POST("/close-group/:chatId", chatHandler.CloseGroup)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func TestBuyerSellerConversationFlow(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	buyer := chatclient.NewClient(server.URL, chatclient.WithToken("buyer-1"))
	seller := chatclient.NewClient(server.URL, chatclient.WithToken("seller-1"))

	// Contacting the seller opens a group; repeating it reuses the group.
	group, err := buyer.GetOrCreateGroup(ctx, "prod-1")
	require.NoError(t, err)
	again, err := buyer.GetOrCreateGroup(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, group.ID, again.ID)
	assert.Equal(t, "Galaxy S23", group.ProductName)
	assert.False(t, group.IsSeller)

	require.NoError(t, buyer.SendMessage(ctx, group.ID, "Is this still available?"))

	// The buyer's next poll renders the message under "Today".
	messages, err := buyer.Messages(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Is this still available?", messages[0].Body)
	assert.Equal(t, "omar", messages[0].Sender.UserName)

	groups := chatclient.GroupMessagesByDate(messages, time.Now())
	require.Len(t, groups, 1)
	assert.Equal(t, "Today", groups[0].Label)

	// The seller's next chat-list poll reports one unread.
	chats, err := seller.MyChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, group.ID, chats[0].ID)
	assert.True(t, chats[0].IsSeller)
	assert.Equal(t, 1, chats[0].UnreadCount)
	assert.Equal(t, 1, chatclient.SummarizeUnread(chats).TotalUnread)

	// Opening the conversation clears the unread state.
	_, err = seller.Messages(ctx, group.ID)
	require.NoError(t, err)
	chats, err = seller.MyChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, chats[0].UnreadCount)
}

func TestClosedChatRejectionIsSurfaced(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	buyer := chatclient.NewClient(server.URL, chatclient.WithToken("buyer-1"))
	seller := chatclient.NewClient(server.URL, chatclient.WithToken("seller-1"))

	group, err := buyer.GetOrCreateGroup(ctx, "prod-1")
	require.NoError(t, err)

	require.NoError(t, seller.CloseGroup(ctx, group.ID))

	info, err := buyer.ChatInfo(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, info.IsClosed)

	err = buyer.SendMessage(ctx, group.ID, "anyone there?")
	require.Error(t, err)

	var apiErr *chatclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "This chat has been closed by the seller", apiErr.Message)
}

func TestSellerCannotContactOwnListing(t *testing.T) {
	server := newTestServer(t)

	seller := chatclient.NewClient(server.URL, chatclient.WithToken("seller-1"))
	_, err := seller.GetOrCreateGroup(context.Background(), "prod-1")
	require.Error(t, err)

	var apiErr *chatclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestMissingAuthIsRejected(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/chat/my-chats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
