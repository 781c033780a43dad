package services

import (
	"errors"
	"strings"
	"time"

	"bracket-pool-go/models"

	"github.com/golang-jwt/jwt/v5"
)

// UserRepository interface for user data operations.
type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByResetToken(token string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
}

// AuthService handles registration, login, and token operations.
type AuthService struct {
	userRepo    UserRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
}

// JWTClaims represents the claims in our JWT token.
type JWTClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: 30 * 24 * time.Hour,
	}
}

// Register creates a new account and returns an authenticated session.
func (a *AuthService) Register(name, email, password string) (*models.AuthResponse, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" || email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters long")
	}
	if existing, _ := a.userRepo.GetUserByEmail(email); existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	user := &models.User{Name: name, Email: email}
	if err := user.HashPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := a.userRepo.CreateUser(user); err != nil {
		return nil, errors.New("failed to create user")
	}

	token, err := a.GenerateToken(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &models.AuthResponse{User: user.ToSafeUser(), Token: token}, nil
}

// Login authenticates a user and returns a JWT token.
func (a *AuthService) Login(email, password string) (*models.AuthResponse, error) {
	user, err := a.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !user.CheckPassword(password) {
		return nil, errors.New("invalid email or password")
	}

	token, err := a.GenerateToken(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &models.AuthResponse{User: user.ToSafeUser(), Token: token}, nil
}

// GenerateToken creates a new JWT token for the user.
func (a *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "bracket-pool-go",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken validates a JWT token and returns its claims.
func (a *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetUserFromToken validates a token and loads the user it names.
func (a *AuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	claims, err := a.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := a.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

// RequestPasswordReset generates a reset token for the user. An unknown
// email returns an empty token without error so the endpoint does not leak
// which addresses exist.
func (a *AuthService) RequestPasswordReset(email string) (*models.User, error) {
	user, err := a.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil
	}

	if err := user.GenerateResetToken(); err != nil {
		return nil, errors.New("failed to generate reset token")
	}
	if err := a.userRepo.UpdateUser(user); err != nil {
		return nil, errors.New("failed to save reset token")
	}

	return user, nil
}

// ResetPassword replaces the user's password using a valid reset token.
func (a *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters long")
	}

	user, err := a.userRepo.GetUserByResetToken(token)
	if err != nil {
		return errors.New("invalid or expired reset token")
	}
	if !user.IsResetTokenValid() {
		return errors.New("invalid or expired reset token")
	}

	if err := user.HashPassword(newPassword); err != nil {
		return errors.New("failed to hash password")
	}
	user.ClearResetToken()

	if err := a.userRepo.UpdateUser(user); err != nil {
		return errors.New("failed to update password")
	}
	return nil
}
