package models

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Admin login only succeeds for admin principals.
	IsAdmin bool `json:"is_admin"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
	User      *User     `json:"user,omitempty"`
}
