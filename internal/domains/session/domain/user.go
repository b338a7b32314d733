package domain

import (
	"errors"
	"regexp"
	"strings"
)

const (
	// MinPasswordLength mirrors the sign-up and profile screens.
	MinPasswordLength = 6
	minNameLength     = 2
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrNameTooShort       = errors.New("name must be at least 2 characters")
	ErrInvalidEmail       = errors.New("enter a valid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrMissingResetToken  = errors.New("reset token is required")
	ErrMissingPassword    = errors.New("current password is required")
	ErrEmptyPatch         = errors.New("nothing to update")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the cached profile of the signed-in customer.
type User struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Role      string `json:"role,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	PushToken string `json:"pushToken,omitempty"`
	CNIC      string `json:"cnic,omitempty"`
}

// Clone returns a copy callers may mutate freely.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// ProfilePatch carries the fields a customer may change; nil means untouched.
type ProfilePatch struct {
	Name      *string
	Phone     *string
	Address   *string
	Avatar    *string
	PushToken *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil && p.Avatar == nil && p.PushToken == nil
}

// Apply merges the patch into a copy of u. Used where no server performs the merge.
func (p ProfilePatch) Apply(u *User) *User {
	out := u.Clone()
	if out == nil {
		out = &User{}
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if p.Address != nil {
		out.Address = *p.Address
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	if p.PushToken != nil {
		out.PushToken = *p.PushToken
	}
	return out
}

// Registration holds the sign-up form.
type Registration struct {
	Name     string
	Email    string
	Password string
	CNIC     string
	Phone    string
}

// Normalize trims the free-text fields.
func (r Registration) Normalize() Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.CNIC = strings.TrimSpace(r.CNIC)
	r.Phone = strings.TrimSpace(r.Phone)
	return r
}

// Validate applies the sign-up form rules.
func (r Registration) Validate() error {
	if len([]rune(strings.TrimSpace(r.Name))) < minNameLength {
		return ErrNameTooShort
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

// Grant is what the server hands back on login or registration.
type Grant struct {
	Token string
	User  *User
}

// ResetAck acknowledges a password reset request. Token is only set by non-production servers.
type ResetAck struct {
	Success bool
	Token   string
}

// ValidateCredentials checks the login form is filled in.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// ValidateEmail checks the address looks like local@domain.tld.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
