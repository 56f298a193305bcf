package availabilityRepo

import (
	"clubsync/models"
)

// AvailabilityRepository is the store of weekly recurring busy/available
// rules. The scheduler engine only ever reads the full rule set; rule
// management endpoints use the CRUD methods.
type AvailabilityRepository interface {
	// ListRules retrieves every availability rule.
	ListRules() ([]models.AvailabilityRule, error)
	// ListRulesForUser retrieves all rules owned by one user.
	ListRulesForUser(userID string) ([]models.AvailabilityRule, error)
	// Create inserts a new rule.
	Create(rule *models.AvailabilityRule) error
	// Delete removes a rule by its ID.
	Delete(id string) error
}
