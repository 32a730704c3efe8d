package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/repositories"
	"github.com/poornima-lanka/artniva/internal/services"
)

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Old Name",
		Email:    "old@example.com",
		Password: string(hashed),
	}

	// Name change only; email and password untouched
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := userService.UpdateProfile(user.ID, services.ProfileUpdate{Name: "New Name"})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "old@example.com", updated.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("oldpassword")))
	mockRepo.AssertExpectations(t)

	// Email change to a taken address is rejected
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.User{ID: "other"}, nil).Once()

	_, err = userService.UpdateProfile(user.ID, services.ProfileUpdate{Email: "taken@example.com"})
	assert.ErrorIs(t, err, services.ErrValidation)
	mockRepo.AssertExpectations(t)

	// Password change is stored hashed
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err = userService.UpdateProfile(user.ID, services.ProfileUpdate{Password: "newpassword"})
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo)

	mockRepo.On("GetByID", "missing").
		Return(nil, fmt.Errorf("user missing: %w", repositories.ErrNotFound)).Once()

	_, err := userService.GetProfile("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_VerifySeller(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo)

	seller := &models.User{ID: "seller-1", Role: models.RoleSeller}
	mockRepo.On("GetByID", seller.ID).Return(seller, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := userService.VerifySeller(seller.ID)
	assert.NoError(t, err)
	assert.True(t, seller.IsVerifiedSeller)
	mockRepo.AssertExpectations(t)

	// A customer account cannot be verified as a seller
	customer := &models.User{ID: "cust-1", Role: models.RoleCustomer}
	mockRepo.On("GetByID", customer.ID).Return(customer, nil).Once()

	err = userService.VerifySeller(customer.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Stats(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo)

	mockRepo.On("CountByRole", models.RoleSeller).Return(int64(10), nil).Once()
	mockRepo.On("CountByRole", models.RoleCustomer).Return(int64(42), nil).Once()
	mockRepo.On("CountSellers", true).Return(int64(7), nil).Once()
	mockRepo.On("CountSellers", false).Return(int64(3), nil).Once()

	stats, err := userService.Stats()
	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalSellers)
	assert.Equal(t, int64(42), stats.TotalCustomers)
	assert.Equal(t, int64(7), stats.VerifiedSellers)
	assert.Equal(t, int64(3), stats.PendingSellers)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo)

	mockRepo.On("Delete", "user-123").Return(nil).Once()
	assert.NoError(t, userService.DeleteUser("user-123"))

	mockRepo.On("Delete", "missing").
		Return(fmt.Errorf("user missing: %w", repositories.ErrNotFound)).Once()
	err := userService.DeleteUser("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
