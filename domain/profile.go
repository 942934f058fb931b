package domain

import "time"

// Profile represents an authenticated identity's display record.
// Authentication itself is handled outside; a profile row only exists for
// users who completed onboarding.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
