package entity

import "time"

// Product is a listed electronic device. Only the fields the chat flow needs
// are modeled; listing management itself lives outside this service.
type Product struct {
	ID          string    `json:"_id" firestore:"id"`
	SellerID    string    `json:"sellerId" firestore:"sellerId"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Category    string    `json:"category,omitempty" firestore:"category,omitempty"`
	Condition   string    `json:"condition,omitempty" firestore:"condition,omitempty"`
	Price       float64   `json:"price" firestore:"price"`
	Status      string    `json:"status" firestore:"status"` // "available", "sold"
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}
