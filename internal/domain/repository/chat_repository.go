package repository

import (
	"context"

	"voltbay/internal/domain/entity"
)

type ChatGroupRepository interface {
	Create(ctx context.Context, group *entity.ChatGroup) error
	GetByID(ctx context.Context, id string) (*entity.ChatGroup, error)
	GetByProductAndBuyer(ctx context.Context, productID, buyerID string) (*entity.ChatGroup, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.ChatGroup, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	Update(ctx context.Context, group *entity.ChatGroup) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByGroup(ctx context.Context, groupID string) ([]*entity.Message, error)
	MarkMessagesRead(ctx context.Context, groupID, readerID string) error
}
