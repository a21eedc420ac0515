package model

import "time"

// UserProfile holds a student's token balance. Tokens never goes negative;
// TotalEarned only grows, so spending leaves the lifetime sum intact.
type UserProfile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	WalletAddress string    `json:"wallet_address"`
	Tokens        int       `json:"tokens"`
	TotalEarned   int       `json:"total_earned"`
	Bio           string    `json:"bio,omitempty"`
	Institution   string    `json:"institution,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
