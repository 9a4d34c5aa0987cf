package dto

import (
	"time"

	"go-task-scheduler/modules/user/entity"
)

// UserResponse for user details; the password hash never leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PaginatedUserResponse for the users list
type PaginatedUserResponse struct {
	Items      []UserResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
}

// ToUserResponse maps entity to DTO
func ToUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
