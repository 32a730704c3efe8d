package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/repositories"
)

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = 15 * time.Minute

// Mailer delivers transactional mail (password-reset links).
type Mailer interface {
	Send(to, subject, body string) error
}

// AuthService handles business logic for authentication: registration,
// login, token validation and the password-reset flow.
type AuthService struct {
	userRepo   repositories.UserRepository
	mailer     Mailer
	events     EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	resetBase  string        // base URL for reset links sent by mail
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, events EventPublisher, jwtSecret, resetBaseURL string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mailer:     mailer,
		events:     events,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
		resetBase:  resetBaseURL,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them to
// the database. The role defaults to customer when none is given.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, ErrValidation)
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishEvent("user.registered", map[string]interface{}{
			"userID": user.ID,
			"role":   user.Role,
		}); err != nil {
			log.Printf("Warning: failed to publish user.registered event: %v", err)
		}
	}
	return nil
}

// LoginUser authenticates a user by email and returns a JWT token and the
// account if successful.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists
		return "", nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid email or password")
	}

	tokenString, err := s.TokenFor(user)
	if err != nil {
		return "", nil, err
	}
	return tokenString, user, nil
}

// TokenFor signs a session token for the given account.
func (s *AuthService) TokenFor(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// ForgotPassword generates a reset token for the account, stores its sha256
// hash with a 15-minute expiry, and mails the raw token as a link. When the
// mail cannot be sent the token fields are cleared again.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return err
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetToken := hex.EncodeToString(raw)

	user.ResetPasswordToken = hashResetToken(resetToken)
	expire := time.Now().Add(resetTokenTTL)
	user.ResetPasswordExpire = &expire
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", s.resetBase, resetToken)
	body := fmt.Sprintf("You requested a password reset. Please click: \n\n%s", resetURL)
	if err := s.mailer.Send(user.Email, "Password Reset", body); err != nil {
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		if clearErr := s.userRepo.Update(user); clearErr != nil {
			log.Printf("Warning: failed to clear reset token for %s: %v", user.ID, clearErr)
		}
		return fmt.Errorf("email could not be sent: %w", err)
	}
	return nil
}

// ResetPassword validates the raw reset token against the stored hash and
// expiry, then replaces the account password.
func (s *AuthService) ResetPassword(resetToken, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("password is required: %w", ErrValidation)
	}

	user, err := s.userRepo.GetByResetToken(hashResetToken(resetToken))
	if err != nil {
		return fmt.Errorf("invalid or expired token: %w", ErrValidation)
	}
	if user.ResetPasswordExpire == nil || time.Now().After(*user.ResetPasswordExpire) {
		return fmt.Errorf("invalid or expired token: %w", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
