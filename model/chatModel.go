// model/chatModel.go
package model

import "time"

// ChatRoom always stores the lower user id in User1ID.
type ChatRoom struct {
	ID        int64     `json:"id"`
	User1ID   int64     `json:"user1_id"`
	User2ID   int64     `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CanonicalPair orders two user ids so a pair maps to a single room.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r ChatRoom) Has(userID int64) bool {
	return r.User1ID == userID || r.User2ID == userID
}

// Other returns the participant that is not userID.
func (r ChatRoom) Other(userID int64) int64 {
	if r.User1ID == userID {
		return r.User2ID
	}
	return r.User1ID
}

type Message struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	SenderID  int64     `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

type RoomSummary struct {
	Room        ChatRoom `json:"room"`
	OtherUserID int64    `json:"other_user_id"`
	OtherName   string   `json:"other_username"`
	Unread      int64    `json:"unread"`
}
