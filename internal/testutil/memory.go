// Package testutil provides in-memory repository implementations for tests.
// They mirror the Firestore adapters' semantics: NOT_FOUND app errors,
// generated ids, ascending message order, copies on read.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"voltbay/internal/domain/entity"
	"voltbay/pkg/errors"
)

type MemoryChatRepository struct {
	mu       sync.Mutex
	groups   map[string]*entity.ChatGroup
	messages map[string][]*entity.Message
	nextID   int
}

func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{
		groups:   make(map[string]*entity.ChatGroup),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *MemoryChatRepository) Create(ctx context.Context, group *entity.ChatGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID == "" {
		r.nextID++
		group.ID = fmt.Sprintf("group-%d", r.nextID)
	}
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now
	if group.UnreadCount == nil {
		group.UnreadCount = make(map[string]int)
	}

	r.groups[group.ID] = copyGroup(group)
	return nil
}

func (r *MemoryChatRepository) GetByID(ctx context.Context, id string) (*entity.ChatGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return copyGroup(group), nil
}

func (r *MemoryChatRepository) GetByProductAndBuyer(ctx context.Context, productID, buyerID string) (*entity.ChatGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, group := range r.groups {
		if group.ProductID == productID && group.BuyerID == buyerID {
			return copyGroup(group), nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *MemoryChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.ChatGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.ChatGroup
	for _, group := range r.groups {
		if group.BuyerID == userID || group.SellerID == userID {
			out = append(out, copyGroup(group))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (r *MemoryChatRepository) CountByProduct(ctx context.Context, productID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, group := range r.groups {
		if group.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *MemoryChatRepository) Update(ctx context.Context, group *entity.ChatGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[group.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	group.UpdatedAt = time.Now()
	r.groups[group.ID] = copyGroup(group)
	return nil
}

func (r *MemoryChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		r.nextID++
		message.ID = fmt.Sprintf("message-%d", r.nextID)
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	clone := *message
	r.messages[message.ChatGroupID] = append(r.messages[message.ChatGroupID], &clone)
	return nil
}

func (r *MemoryChatRepository) GetMessagesByGroup(ctx context.Context, groupID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.messages[groupID]
	out := make([]*entity.Message, 0, len(stored))
	for _, message := range stored {
		clone := *message
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryChatRepository) MarkMessagesRead(ctx context.Context, groupID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, message := range r.messages[groupID] {
		if message.SenderID != readerID {
			message.IsRead = true
		}
	}
	return nil
}

func copyGroup(group *entity.ChatGroup) *entity.ChatGroup {
	clone := *group
	clone.UnreadCount = make(map[string]int, len(group.UnreadCount))
	for k, v := range group.UnreadCount {
		clone.UnreadCount[k] = v
	}
	return &clone
}

type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*entity.User)}
}

func (r *MemoryUserRepository) Add(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	clone := *user
	return &clone, nil
}

type MemoryProductRepository struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[string]*entity.Product)}
}

func (r *MemoryProductRepository) Add(product *entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *product
	r.products[product.ID] = &clone
}

func (r *MemoryProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	clone := *product
	return &clone, nil
}
