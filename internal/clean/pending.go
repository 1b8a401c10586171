package clean

import (
	"context"

	"github.com/matthieukhl/salesclean/internal/models"
)

// pending stands in for marketplaces whose export format is not mapped yet.
// The input is still ingested so unreadable files are reported as such.
type pending struct {
	marketplace models.Marketplace
}

func (p *pending) Marketplace() models.Marketplace {
	return p.marketplace
}

func (p *pending) Transform(ctx context.Context, raw *models.RawTable) (*models.Table, error) {
	return nil, &StageError{Marketplace: p.marketplace, Stage: StageProject, Err: ErrNotImplemented}
}
