package user

// CreateUserRequest represents the request to register a new user
type CreateUserRequest struct {
	FullName  string  `json:"full_name" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CollegeID *string `json:"college_id,omitempty"`
}

// UserResponse represents the response for a user
type UserResponse struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CollegeID *string `json:"college_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		CollegeID: u.CollegeID,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
