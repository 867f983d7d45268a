package usecase

import (
	"context"
	"strings"
	"time"

	"voltbay/internal/domain/entity"
	"voltbay/internal/domain/repository"
	"voltbay/pkg/errors"
	"voltbay/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatGroupRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

func NewChatUseCase(
	chatRepo repository.ChatGroupRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// UserRef is the embedded participant shape the client renders from.
type UserRef struct {
	ID              string `json:"_id"`
	UserName        string `json:"userName"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// ChatGroupView is a chat group as seen by one viewer. IsSeller, UnreadCount
// and ParticipantCount are computed relative to that viewer on every read.
type ChatGroupView struct {
	ID               string     `json:"_id"`
	ProductID        string     `json:"productId"`
	ProductName      string     `json:"productName"`
	Seller           UserRef    `json:"sellerId"`
	IsSeller         bool       `json:"isSeller"`
	ParticipantCount int        `json:"participantCount"`
	LastMessage      string     `json:"lastMessage,omitempty"`
	LastMessageAt    *time.Time `json:"lastMessageAt,omitempty"`
	UnreadCount      int        `json:"unreadCount"`
	IsClosed         bool       `json:"isClosed"`
}

type MessageView struct {
	ID          string    `json:"_id"`
	ChatGroupID string    `json:"chatGroupId"`
	Sender      UserRef   `json:"senderId"`
	Body        string    `json:"message"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GetOrCreateGroup opens the chat group for (product, viewer), creating it on
// first contact. Repeated calls for the same pair return the same group.
func (uc *ChatUseCase) GetOrCreateGroup(ctx context.Context, viewerID, productID string) (*ChatGroupView, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Warn("GetOrCreateGroup: product %s not found: %v", productID, err)
		return nil, err
	}

	if product.SellerID == viewerID {
		return nil, errors.BadRequest("You cannot contact yourself as the seller", nil)
	}

	group, err := uc.chatRepo.GetByProductAndBuyer(ctx, productID, viewerID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		group = &entity.ChatGroup{
			ProductID:     productID,
			ProductName:   product.Name,
			SellerID:      product.SellerID,
			BuyerID:       viewerID,
			UnreadCount:   make(map[string]int),
			LastMessageAt: time.Now(),
		}
		if err := uc.chatRepo.Create(ctx, group); err != nil {
			logger.Error("GetOrCreateGroup: failed to create group for product %s: %v", productID, err)
			return nil, err
		}
		logger.Info("GetOrCreateGroup: created group %s for product %s and buyer %s", group.ID, productID, viewerID)
	}

	return uc.buildGroupView(ctx, group, viewerID, map[string]*entity.User{}), nil
}

// MyChats returns every group the viewer participates in, most recent first.
func (uc *ChatUseCase) MyChats(ctx context.Context, viewerID string) ([]*ChatGroupView, error) {
	groups, err := uc.chatRepo.ListByUserID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	sellers := make(map[string]*entity.User)
	views := make([]*ChatGroupView, 0, len(groups))
	for _, group := range groups {
		views = append(views, uc.buildGroupView(ctx, group, viewerID, sellers))
	}

	return views, nil
}

// ChatInfo returns one group's metadata for the viewer.
func (uc *ChatUseCase) ChatInfo(ctx context.Context, viewerID, groupID string) (*ChatGroupView, error) {
	group, err := uc.chatRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasParticipant(viewerID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	return uc.buildGroupView(ctx, group, viewerID, map[string]*entity.User{}), nil
}

// Messages returns the conversation in ascending createdAt order. Viewing a
// conversation is what marks the counterpart's messages read, so this also
// zeroes the viewer's unread count for the group.
func (uc *ChatUseCase) Messages(ctx context.Context, viewerID, groupID string) ([]*MessageView, error) {
	group, err := uc.chatRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasParticipant(viewerID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	if err := uc.chatRepo.MarkMessagesRead(ctx, groupID, viewerID); err != nil {
		logger.Warn("Messages: failed to mark messages read in group %s: %v", groupID, err)
	}
	if group.UnreadCount[viewerID] != 0 {
		group.UnreadCount[viewerID] = 0
		if err := uc.chatRepo.Update(ctx, group); err != nil {
			logger.Warn("Messages: failed to reset unread count in group %s: %v", groupID, err)
		}
	}

	messages, err := uc.chatRepo.GetMessagesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	senders := make(map[string]*entity.User)
	views := make([]*MessageView, 0, len(messages))
	for _, message := range messages {
		isRead := message.IsRead
		if message.SenderID != viewerID {
			// The viewer is reading it right now.
			isRead = true
		}
		views = append(views, &MessageView{
			ID:          message.ID,
			ChatGroupID: message.ChatGroupID,
			Sender:      uc.userRef(ctx, message.SenderID, senders),
			Body:        message.Body,
			IsRead:      isRead,
			CreatedAt:   message.CreatedAt,
		})
	}

	return views, nil
}

type SendMessageInput struct {
	ChatGroupID string
	Body        string
}

// SendMessage appends a message to an open group and bumps the counterpart's
// unread count. Closed groups reject writes permanently.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*MessageView, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, errors.BadRequest("Message cannot be empty", nil)
	}

	group, err := uc.chatRepo.GetByID(ctx, input.ChatGroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}
	if group.IsClosed {
		return nil, errors.Conflict("This chat has been closed by the seller")
	}

	message := &entity.Message{
		ChatGroupID: group.ID,
		SenderID:    senderID,
		Body:        body,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		logger.Error("SendMessage: failed to create message in group %s: %v", group.ID, err)
		return nil, err
	}

	group.LastMessage = body
	group.LastMessageAt = message.CreatedAt
	if group.UnreadCount == nil {
		group.UnreadCount = make(map[string]int)
	}
	group.UnreadCount[group.Counterpart(senderID)]++

	if err := uc.chatRepo.Update(ctx, group); err != nil {
		logger.Error("SendMessage: failed to update group %s after message: %v", group.ID, err)
		return nil, err
	}

	senders := make(map[string]*entity.User)
	return &MessageView{
		ID:          message.ID,
		ChatGroupID: message.ChatGroupID,
		Sender:      uc.userRef(ctx, senderID, senders),
		Body:        message.Body,
		IsRead:      message.IsRead,
		CreatedAt:   message.CreatedAt,
	}, nil
}

// CloseGroup is the seller's terminal action on a conversation. Once closed,
// a group never reopens.
func (uc *ChatUseCase) CloseGroup(ctx context.Context, viewerID, groupID string) error {
	group, err := uc.chatRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.SellerID != viewerID {
		return errors.Forbidden("Only the seller can close this chat", nil)
	}
	if group.IsClosed {
		return nil
	}

	group.IsClosed = true
	if err := uc.chatRepo.Update(ctx, group); err != nil {
		logger.Error("CloseGroup: failed to close group %s: %v", groupID, err)
		return err
	}

	logger.Info("CloseGroup: group %s closed by seller %s", groupID, viewerID)
	return nil
}

func (uc *ChatUseCase) buildGroupView(ctx context.Context, group *entity.ChatGroup, viewerID string, sellers map[string]*entity.User) *ChatGroupView {
	isSeller := viewerID == group.SellerID

	participantCount := 1
	if isSeller {
		count, err := uc.chatRepo.CountByProduct(ctx, group.ProductID)
		if err != nil {
			logger.Warn("buildGroupView: failed to count buyers for product %s: %v", group.ProductID, err)
		} else if count > 0 {
			participantCount = count
		}
	}

	view := &ChatGroupView{
		ID:               group.ID,
		ProductID:        group.ProductID,
		ProductName:      group.ProductName,
		Seller:           uc.userRef(ctx, group.SellerID, sellers),
		IsSeller:         isSeller,
		ParticipantCount: participantCount,
		LastMessage:      group.LastMessage,
		UnreadCount:      group.UnreadCount[viewerID],
		IsClosed:         group.IsClosed,
	}
	if !group.LastMessageAt.IsZero() {
		at := group.LastMessageAt
		view.LastMessageAt = &at
	}

	return view
}

// userRef resolves a user to its embedded wire shape, tolerating missing
// accounts so a dangling reference never breaks rendering.
func (uc *ChatUseCase) userRef(ctx context.Context, userID string, cache map[string]*entity.User) UserRef {
	if user, ok := cache[userID]; ok {
		return UserRef{ID: user.ID, UserName: user.Username, ProfileImageURL: user.ProfileImageURL}
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("userRef: user %s not found: %v", userID, err)
		return UserRef{ID: userID}
	}
	cache[userID] = user

	return UserRef{ID: user.ID, UserName: user.Username, ProfileImageURL: user.ProfileImageURL}
}
