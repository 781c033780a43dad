package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered participant.
type User struct {
	ID               int        `json:"id" bson:"_id"`
	Name             string     `json:"name" bson:"name"`
	Email            string     `json:"email" bson:"email"`
	Password         string     `json:"-" bson:"password"` // Never serialize password in JSON
	ResetToken       string     `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpiry *time.Time `json:"-" bson:"resetTokenExpiry,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// RegisterRequest represents account signup data.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents login form data.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful authentication.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// PasswordResetRequest asks for a reset token by email.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetForm carries the token and replacement password.
type PasswordResetForm struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// HashPassword hashes and stores the given password using bcrypt.
func (u *User) HashPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// ToSafeUser returns a copy of the user without sensitive fields.
func (u *User) ToSafeUser() User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// GenerateResetToken creates a new password reset token valid for 24 hours.
func (u *User) GenerateResetToken() error {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return err
	}
	u.ResetToken = hex.EncodeToString(bytes)
	expiry := time.Now().Add(24 * time.Hour)
	u.ResetTokenExpiry = &expiry
	return nil
}

// IsResetTokenValid reports whether the stored reset token is still usable.
func (u *User) IsResetTokenValid() bool {
	return u.ResetToken != "" && u.ResetTokenExpiry != nil && time.Now().Before(*u.ResetTokenExpiry)
}

// ClearResetToken invalidates any outstanding reset token.
func (u *User) ClearResetToken() {
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
}
