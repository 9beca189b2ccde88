package user

import "hridhayam-client/internal/session"

type User struct {
	ID    string       `json:"id"`
	Name  string       `json:"name,omitempty"`
	Email string       `json:"email,omitempty"`
	Phone string       `json:"phone,omitempty"`
	Role  session.Role `json:"role,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
}

type userResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}

type updateRequest struct {
	UserID          string `json:"userId"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
