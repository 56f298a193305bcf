package userRepo

import (
	"clubsync/models"
)

// UserRepository is the member directory consumed by the scheduler engine.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetAll retrieves all users, optionally filtered to one club.
	// Pass an empty string to list every user.
	GetAll(clubFilter string) ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
