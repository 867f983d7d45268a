package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"voltbay/internal/domain/entity"
	"voltbay/internal/domain/repository"
	"voltbay/pkg/errors"
	"voltbay/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatGroupRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, group *entity.ChatGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}

	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now
	if group.UnreadCount == nil {
		group.UnreadCount = make(map[string]int)
	}

	_, err := r.client.Collection("chatGroups").Doc(group.ID).Set(ctx, group)
	if err != nil {
		return errors.Internal("Failed to create chat group", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.ChatGroup, error) {
	doc, err := r.client.Collection("chatGroups").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", nil)
		}
		return nil, errors.Internal("Failed to get chat group", err)
	}

	var group entity.ChatGroup
	if err := doc.DataTo(&group); err != nil {
		return nil, errors.Internal("Failed to parse chat group data", err)
	}

	return &group, nil
}

func (r *firestoreChatRepository) GetByProductAndBuyer(ctx context.Context, productID, buyerID string) (*entity.ChatGroup, error) {
	query := r.client.Collection("chatGroups").
		Where("productId", "==", productID).
		Where("buyerId", "==", buyerID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Chat", nil)
		}
		return nil, errors.Internal("Failed to query chat group by product and buyer", err)
	}

	var group entity.ChatGroup
	if err := doc.DataTo(&group); err != nil {
		return nil, errors.Internal("Failed to parse chat group data", err)
	}

	return &group, nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.ChatGroup, error) {
	var groups []*entity.ChatGroup

	for _, field := range []string{"buyerId", "sellerId"} {
		iter := r.client.Collection("chatGroups").Where(field, "==", userID).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				logger.Error("Firestore error while listing chat groups for user %s: %v", userID, err)
				return nil, errors.Internal("Failed to list chat groups", err)
			}

			var group entity.ChatGroup
			if err := doc.DataTo(&group); err != nil {
				return nil, errors.Internal("Failed to parse chat group data", err)
			}

			groups = append(groups, &group)
		}
	}

	// Most recent activity first.
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].LastMessageAt.After(groups[j].LastMessageAt)
	})

	return groups, nil
}

func (r *firestoreChatRepository) CountByProduct(ctx context.Context, productID string) (int, error) {
	docs, err := r.client.Collection("chatGroups").Where("productId", "==", productID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count chat groups for product", err)
	}
	return len(docs), nil
}

func (r *firestoreChatRepository) Update(ctx context.Context, group *entity.ChatGroup) error {
	group.UpdatedAt = time.Now()

	_, err := r.client.Collection("chatGroups").Doc(group.ID).Set(ctx, group)
	if err != nil {
		return errors.Internal("Failed to update chat group", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("chatGroups").Doc(message.ChatGroupID).Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetMessagesByGroup(ctx context.Context, groupID string) ([]*entity.Message, error) {
	iter := r.client.Collection("chatGroups").Doc(groupID).Collection("messages").
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating messages for chat %s: %v", groupID, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreChatRepository) MarkMessagesRead(ctx context.Context, groupID, readerID string) error {
	iter := r.client.Collection("chatGroups").Doc(groupID).Collection("messages").
		Where("isRead", "==", false).
		Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to query unread messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return errors.Internal("Failed to parse message data", err)
		}

		// Only the recipient's view marks a message read.
		if message.SenderID == readerID {
			continue
		}

		message.IsRead = true
		if _, err := doc.Ref.Set(ctx, &message); err != nil {
			return errors.Internal("Failed to update message read status", err)
		}
	}

	return nil
}
