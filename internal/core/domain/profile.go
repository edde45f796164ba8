package domain

import "time"

const MaxNicknameLength = 100

// Profile is a user's display identity. ID equals the owning user's ID.
type Profile struct {
	ID        string    `json:"id" bson:"_id"`
	Nickname  string    `json:"nickname" bson:"nickname"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
