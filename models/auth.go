package models

// Request payloads for the identity routes. Rules mirror what the hosted provider
// enforces so obviously bad input never leaves the process.

type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=5"`
	Name      string `json:"name" validate:"required,min=5"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Birthdate string `json:"birthdate" validate:"required"`
	Type      string `json:"type" validate:"required"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required,min=5"`
	Password string `json:"password" validate:"required,min=8"`
}

type VerifyRequest struct {
	Username string `json:"username" validate:"required,min=5"`
	Code     string `json:"code" validate:"required,len=6"`
}

type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required,min=5"`
}

type ConfirmPasswordRequest struct {
	Username string `json:"username" validate:"required,min=5"`
	Password string `json:"password" validate:"required,min=8"`
	Code     string `json:"code" validate:"required,len=6"`
}
