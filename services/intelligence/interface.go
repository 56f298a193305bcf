// File: services/intelligence/interface.go
package intelligence

import (
	"context"

	"clubsync/models"
)

// Advisor re-scores a bounded set of locally pre-ranked candidate slots.
// Implementations must respect the context deadline; callers treat every
// error as a signal to fall back to local scoring, never as a hard failure.
type Advisor interface {
	ScoreSlots(ctx context.Context, req *models.AdvisorRequest) (*models.AdvisorResponse, error)
}
