package response

import (
	"time"

	"bizportal/internal/data/entity"
)

type UserResponse struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Role      entity.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// PageResponse is the payload of every page: its data plus drained flashes.
type PageResponse struct {
	Flashes []string    `json:"flashes"`
	Page    interface{} `json:"page,omitempty"`
}

type HomeResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

type MFAPageResponse struct {
	// Code is only filled when code exposure is enabled for development.
	Code string `json:"mfa_code,omitempty"`
}
