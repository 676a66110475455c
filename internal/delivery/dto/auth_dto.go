package dto

// Request DTOs

type LoginRequest struct {
	Login    string `json:"login" validate:"required,min=5,max=50"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterCustomerRequest struct {
	Login       string `json:"login" validate:"required,min=5,max=50"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	FirstName   string `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string `json:"last_name" validate:"required,min=2,max=50"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,phone,max=20"`
	Address     string `json:"address" validate:"omitempty,max=255"`
}

type RegisterAdminRequest struct {
	Login     string `json:"login" validate:"required,min=5,max=50"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

// MeResponse carries exactly one of the profile fields, matching Role.
type MeResponse struct {
	Role     string            `json:"role"`
	Admin    *AdminResponse    `json:"admin,omitempty"`
	Customer *CustomerResponse `json:"customer,omitempty"`
	Employee *EmployeeResponse `json:"employee,omitempty"`
}
