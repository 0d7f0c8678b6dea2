package model

import "strings"

const RoleSuperAdmin = "super_admin"

type Admin struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Initials returns up to two upper-case initials for the profile avatar.
func (a Admin) Initials() string {
	source := a.FullName
	if source == "" {
		source = a.Email
	}
	if source == "" {
		return "A"
	}

	initials := make([]rune, 0, 2)
	for _, part := range strings.Fields(source) {
		initials = append(initials, []rune(part)[0])
		if len(initials) == 2 {
			break
		}
	}

	return strings.ToUpper(string(initials))
}

// Known reports whether the profile carries enough identity to display.
func (a Admin) Known() bool {
	return a.FullName != "" || a.Email != ""
}

func (a Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

type AdminPage struct {
	Admins []Admin `json:"admins"`
	PageMeta
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	Admin       Admin  `json:"admin"`
}

type CreateAdminRequest struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
	IsActive             bool   `json:"is_active"`
}

type UpdateAdminRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword         string `json:"current_password,omitempty"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}
