package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is one user's rating of one lot. (LotID, UserID) is unique.
type Review struct {
	ID        string    `json:"id" bson:"_id"`
	LotID     string    `json:"lot_id" bson:"lot_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   *string   `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// LotReview is a review as listed on a lot page.
type LotReview struct {
	Review         `bson:",inline"`
	AuthorNickname *string `json:"author_nickname" bson:"author_nickname"`
}

// LotSummary identifies the lot a profile review belongs to.
type LotSummary struct {
	ID      string `json:"id" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	Roaster string `json:"roaster" bson:"roaster"`
}

// UserReview is a review as listed on its author's profile.
type UserReview struct {
	Review `bson:",inline"`
	Lot    *LotSummary `json:"lot" bson:"lot"`
}
