package services

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/models"
	"github.com/localnerve/agenthub/internal/types"
	"gorm.io/gorm"
)

// UserView is the API shape of a profile.
type UserView struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
}

func userView(u *models.User) UserView {
	return UserView{
		UID:         u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// RegisterUser creates the account at the identity provider and mirrors the
// profile locally for lookups. The provider owns the account from here on.
func RegisterUser(db *gorm.DB, provider IdentityProvider, email, password, displayName string) (string, error) {
	uid, err := provider.SignUp(email, password)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:          uid,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(&user).Error; err != nil {
		return "", storageError(err)
	}

	return uid, nil
}

// LookupUserByEmail resolves a profile for the login exists-check. Token
// issuance itself happens client-side against the identity provider.
func LookupUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewError(fiber.StatusNotFound,
				"User not found", types.ErrOwnershipNotFound)
		}
		return nil, storageError(err)
	}
	return &user, nil
}

// GetProfile fetches the caller's mirrored profile.
func GetProfile(db *gorm.DB, userID string) (*UserView, error) {
	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewError(fiber.StatusNotFound,
				"User not found", types.ErrOwnershipNotFound)
		}
		return nil, storageError(err)
	}
	view := userView(&user)
	return &view, nil
}
