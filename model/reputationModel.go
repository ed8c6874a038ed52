// model/reputationModel.go
package model

import "time"

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
	DefaultScore  = 1
)

type Review struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	BookID    int64     `json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type UserCredit struct {
	ID         int64     `json:"id"`
	GiverID    int64     `json:"giver_id"`
	ReceiverID int64     `json:"receiver_id"`
	Score      int       `json:"score"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// AverageRating is the arithmetic mean of the ratings, 0 when there are none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

type Profile struct {
	User            User     `json:"user"`
	Books           []Book   `json:"books"`
	ReceivedReviews []Review `json:"received_reviews"`
	TrustScore      int64    `json:"trust_score"`
	UnreadMessages  int64    `json:"unread_messages"`
}
