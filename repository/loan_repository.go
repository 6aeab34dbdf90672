package repository

import (
	"context"

	"lending-core/domain"
)

// CalculationRepository keeps a log of loan calculations served.
type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	Recent(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}
