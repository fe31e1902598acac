package models

// User is the profile the backend resolves from a session token.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// RegisterRequest is the sign-up payload forwarded to the backend.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the sign-in payload forwarded to the backend.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by the backend's register and login endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
