package dto

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginResponse returns the issued token and the role's dashboard.
type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	RedirectURL string `json:"redirect_url"`
}

// ProfileResponse describes the authenticated employee.
type ProfileResponse struct {
	ID           int64    `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Email        string   `json:"email"`
	Phone        *string  `json:"phone"`
	Role         string   `json:"role"`
	DepartmentID *int64   `json:"department_id"`
	IsActive     bool     `json:"is_active"`
	Address      *string  `json:"address"`
	DateOfBirth  *string  `json:"date_of_birth"`
	Salary       *float64 `json:"salary"`
}

// ChangePasswordRequest is the payload for POST /settings/change-password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" form:"old_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// UpdatePhoneRequest is the payload for POST /settings/update-phone.
type UpdatePhoneRequest struct {
	Phone string `json:"phone" form:"phone"`
}

// UpdateAddressRequest is the payload for POST /settings/update-address.
type UpdateAddressRequest struct {
	Address string `json:"address" form:"address"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}
