package user

import "time"

// User represents a rider or driver in the system
type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CollegeID *string   `json:"college_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
