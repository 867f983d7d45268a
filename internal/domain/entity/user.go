package entity

import "time"

type User struct {
	ID              string    `json:"id" firestore:"id"`
	Username        string    `json:"username" firestore:"userName"`
	Email           string    `json:"email" firestore:"email"`
	ProfileImageURL string    `json:"profile_image_url,omitempty" firestore:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updatedAt"`
}
