package dto

import (
	"time"

	domainuser "github.com/krushna001m/RentEasy-sub000/internal/domain/user"
)

type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthResponse struct {
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}

func NewAuthResponse(u *domainuser.User, token string) AuthResponse {
	return AuthResponse{
		User: UserProfile{
			ID:        string(u.ID),
			Email:     u.Email,
			Name:      u.Name,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		Token: token,
	}
}
