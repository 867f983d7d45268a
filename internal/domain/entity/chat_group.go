package entity

import "time"

// ChatGroup is the conversation scoped to one buyer-seller-product triple.
// Exactly one group exists per (product, buyer) pair; a seller sees one
// group per distinct buyer interested in their product.
type ChatGroup struct {
	ID            string         `json:"id" firestore:"id"`
	ProductID     string         `json:"product_id" firestore:"productId"`
	ProductName   string         `json:"product_name" firestore:"productName"`
	SellerID      string         `json:"seller_id" firestore:"sellerId"`
	BuyerID       string         `json:"buyer_id" firestore:"buyerId"`
	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"` // Map of userID to unread count
	IsClosed      bool           `json:"is_closed" firestore:"isClosed"`
	CreatedAt     time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether userID is the buyer or the seller.
func (g *ChatGroup) HasParticipant(userID string) bool {
	return userID != "" && (userID == g.BuyerID || userID == g.SellerID)
}

// Counterpart returns the other participant's user ID.
func (g *ChatGroup) Counterpart(userID string) string {
	if userID == g.SellerID {
		return g.BuyerID
	}
	return g.SellerID
}
