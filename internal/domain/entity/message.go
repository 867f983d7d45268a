package entity

import "time"

// Message is immutable after creation except for the isRead transition
// false -> true, which happens once the recipient views the conversation.
type Message struct {
	ID          string    `json:"id" firestore:"id"`
	ChatGroupID string    `json:"chat_group_id" firestore:"chatGroupId"`
	SenderID    string    `json:"sender_id" firestore:"senderId"`
	Body        string    `json:"body" firestore:"message"`
	IsRead      bool      `json:"is_read" firestore:"isRead"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
