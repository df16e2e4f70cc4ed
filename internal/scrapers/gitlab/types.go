package gitlab

import "time"

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// Created parses the account creation timestamp.
func (u User) Created() (time.Time, error) {
	return time.Parse(time.RFC3339, u.CreatedAt)
}

type Event struct {
	ID         int64  `json:"id"`
	ActionName string `json:"action_name"`
	CreatedAt  string `json:"created_at"`
}

// Activity is everything the api path needs to build a calendar for a user.
type Activity struct {
	User   User
	Events []Event
}
