// Package account registers learners, authenticates them with bearer tokens and
// reports the user statistics shown to administrators.
package account

import "time"

type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLogin"`
}

// Stats summarizes the registered users for the admin view.
type Stats struct {
	Total    int `json:"total"`
	Online   int `json:"online"`
	NewToday int `json:"newToday"`
}

// OnlineWindow is how recently a user must have logged in to count as online.
const OnlineWindow = 5 * time.Minute

func computeStats(users []User, now time.Time) Stats {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats := Stats{Total: len(users)}
	for _, u := range users {
		if u.LastLoginAt != nil && now.Sub(*u.LastLoginAt) < OnlineWindow {
			stats.Online++
		}
		if !u.CreatedAt.Before(startOfDay) {
			stats.NewToday++
		}
	}
	return stats
}
