package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltbay/internal/domain/entity"
	"voltbay/internal/testutil"
	"voltbay/pkg/errors"
)

func newTestChatUseCase(t *testing.T) (*ChatUseCase, *testutil.MemoryChatRepository) {
	t.Helper()

	chatRepo := testutil.NewMemoryChatRepository()
	userRepo := testutil.NewMemoryUserRepository()
	productRepo := testutil.NewMemoryProductRepository()

	userRepo.Add(&entity.User{ID: "seller-1", Username: "dana", ProfileImageURL: "https://img.example/dana.png"})
	userRepo.Add(&entity.User{ID: "buyer-1", Username: "omar"})
	userRepo.Add(&entity.User{ID: "buyer-2", Username: "mei"})

	productRepo.Add(&entity.Product{ID: "prod-1", SellerID: "seller-1", Name: "ThinkPad X1 Carbon", Price: 650, Status: "available"})

	return NewChatUseCase(chatRepo, userRepo, productRepo), chatRepo
}

func TestGetOrCreateGroupIsIdempotent(t *testing.T) {
	uc, chatRepo := newTestChatUseCase(t)
	ctx := context.Background()

	first, err := uc.GetOrCreateGroup(ctx, "buyer-1", "prod-1")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := uc.GetOrCreateGroup(ctx, "buyer-1", "prod-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := chatRepo.CountByProduct(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetOrCreateGroupRejectsOwnListing(t *testing.T) {
	uc, _ := newTestChatUseCase(t)

	_, err := uc.GetOrCreateGroup(context.Background(), "seller-1", "prod-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestGetOrCreateGroupUnknownProduct(t *testing.T) {
	uc, _ := newTestChatUseCase(t)

	_, err := uc.GetOrCreateGroup(context.Background(), "buyer-1", "prod-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendMessageBumpsCounterpartUnread(t *testing.T) {
	uc, _ := newTestChatUseCase(t)
	ctx := context.Background()

	group, err := uc.GetOrCreateGroup(ctx, "buyer-1", "prod-1")
	require.NoError(t, err)

	for _, body := range []string{"Is this still available?", "Does it come with a charger?"} {
		_, err := uc.SendMessage(ctx, "buyer-1", SendMessageInput{ChatGroupID: group.ID, Body: body})
		require.NoError(t, err)
	}

	sellerChats, err := uc.MyChats(ctx, "seller-1")
	require.NoError(t, err)
	require.Len(t, sellerChats, 1)
	assert.True(t, sellerChats[0].IsSeller)
	assert.Equal(t, 2, sellerChats[0].UnreadCount)
	assert.Equal(t, "Does it come with a charger?", sellerChats[0].LastMessage)

	buyerChats, err := uc.MyChats(ctx, "buyer-1")
	require.NoError(t, err)
	require.Len(t, buyerChats, 1)
	assert.False(t, buyerChats[0].IsSeller)
	assert.Equal(t, 0, buyerChats[0].UnreadCount)
	assert.Equal(t, "dana", buyerChats[0].Seller.UserName)
}

func TestSellerViewCountsDistinctBuyers(t *testing.T) {
	uc, _ := newTestChatUseCase(t)
	ctx := context.Background()

	_, err := uc.GetOrCreateGroup(ctx, "buyer-1", "prod-1")
	require.NoError(t, err)
	_, err = uc.GetOrCreateGroup(ctx, "buyer-2", "prod-1")
	require.NoError(t, err)

	sellerChats, err := uc.MyChats(ctx, "seller-1")
	require.NoError(t, err)
	require.Len(t, sellerChats, 2)
	for _, chat := range sellerChats {
		assert.Equal(t, 2, chat.ParticipantCount)
	}

	buyerChats, err := uc.MyChats(ctx, "buyer-1")
	require.NoError(t, err)
	require.Len(t, buyerChats, 1)
	assert.Equal(t, 1, buyerChats[0].ParticipantCount)
}

func TestMessagesMarksConversationRead(t *testing.T) {
	uc, _ := newTestChatUseCase(t)
	ctx := context.Background()

	group, err := uc.GetOrCreateGroup(ctx, "buyer-1", "prod-1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "buyer-1", SendMessageInput{ChatGroupID: group.ID, Body: "Is this still available?"})
	require.NoError(t, err)

	// Seller opens the conversation.
	messages, err := uc.Messages(ctx, "seller-1", group.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].IsRead)
	assert.Equal(t, "omar", messages[0].Sender.UserName)

	sellerChats, err := uc.MyChats(ctx, "seller-1")
	require.NoError(t, err)
	require.Len(t, sellerChats, 1)
	assert.Equal(t, 0, sellerChats[0].UnreadCount)

	// The sender now sees the read receipt.
	buyerView, err := uc.Messages(ctx, "buyer-1", group.ID)
	require.NoError(t, err)
	require.Len(t, buyerView, 1)
	assert.True(t, buyerView[0].IsRead)
}

func TestMessagesRequiresParticipant(t *testing.T) {
	uc, _ := newTestChatUseCase(t)
	ctx := context.Background()

	group, err := uc.GetOrCreateGroup(ctx, "buyer-1", "prod-1")
	require.NoError(t, err)

	_, err = uc.Messages(ctx, "buyer-2", group.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageValidation(t *testing.T) {
	uc, _ := newTestChatUseCase(t)
	ctx := context.Background()

	group, err := uc.GetOrCreateGroup(ctx, "buyer-1", "prod-1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "buyer-1", SendMessageInput{ChatGroupID: group.ID, Body: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.SendMessage(ctx, "buyer-2", SendMessageInput{ChatGroupID: group.ID, Body: "hello"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestClosedGroupRejectsWrites(t *testing.T) {
	uc, _ := newTestChatUseCase(t)
	ctx := context.Background()

	group, err := uc.GetOrCreateGroup(ctx, "buyer-1", "prod-1")
	require.NoError(t, err)

	// Only the seller can close.
	err = uc.CloseGroup(ctx, "buyer-1", group.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.CloseGroup(ctx, "seller-1", group.ID))
	// Closing twice stays terminal and quiet.
	require.NoError(t, uc.CloseGroup(ctx, "seller-1", group.ID))

	_, err = uc.SendMessage(ctx, "buyer-1", SendMessageInput{ChatGroupID: group.ID, Body: "anyone there?"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))

	info, err := uc.ChatInfo(ctx, "buyer-1", group.ID)
	require.NoError(t, err)
	assert.True(t, info.IsClosed)
}
