package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/repositories"
)

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalSellers    int64 `json:"totalSellers"`
	TotalCustomers  int64 `json:"totalCustomers"`
	VerifiedSellers int64 `json:"verifiedSellers"`
	PendingSellers  int64 `json:"pendingSellers"`
}

// ProfileUpdate carries the fields a user may change on their own account.
// Empty fields are left untouched.
type ProfileUpdate struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// UserService handles business logic for profiles and admin account
// management.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetProfile retrieves a user's account.
func (s *UserService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the given changes to the user's own account.
func (s *UserService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" && update.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(update.Email); err == nil && existing != nil {
			return nil, fmt.Errorf("email '%s' already registered: %w", update.Email, ErrValidation)
		}
		user.Email = update.Email
	}
	if update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetAllUsers retrieves every account (admin only).
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// DeleteUser removes an account (admin only).
func (s *UserService) DeleteUser(userID string) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return err
	}
	return nil
}

// VerifySeller marks a seller account as verified (admin only). Accounts
// that are not sellers are reported as not found, matching the lookup being
// scoped to sellers.
func (s *UserService) VerifySeller(userID string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleSeller {
		return fmt.Errorf("seller %s: %w", userID, ErrNotFound)
	}
	user.IsVerifiedSeller = true
	return s.userRepo.Update(user)
}

// Stats computes the admin dashboard counters.
func (s *UserService) Stats() (*AdminStats, error) {
	totalSellers, err := s.userRepo.CountByRole(models.RoleSeller)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.userRepo.CountByRole(models.RoleCustomer)
	if err != nil {
		return nil, err
	}
	verified, err := s.userRepo.CountSellers(true)
	if err != nil {
		return nil, err
	}
	pending, err := s.userRepo.CountSellers(false)
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalSellers:    totalSellers,
		TotalCustomers:  totalCustomers,
		VerifiedSellers: verified,
		PendingSellers:  pending,
	}, nil
}
