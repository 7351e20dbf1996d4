package domain

import "time"

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// Trip records that a user has booked a seat on a launch. One row per
// (user, launch) pair.
type Trip struct {
	ID        int64
	UserID    int64
	LaunchID  int
	CreatedAt time.Time
}
