package calculator

import (
	"context"
	"numerology/pkg/domain"
)

// Calculator is the entry point collaborators use to obtain numerology
// numbers. It applies request policy on top of the pure engine and reports
// failures as serrors kinds.
//
//go:generate mockgen -package mockcalculator -source=interface.go -destination=mock/mockcalculator.go *
type Calculator interface {
	// Profile computes the full ten-number profile.
	Profile(ctx context.Context, req domain.ProfileRequest) (*domain.Profile, error)
	// Metric computes a single number by its catalog name.
	Metric(ctx context.Context, metric string, req domain.ProfileRequest) (*domain.MetricValue, error)
	// Batch computes several profiles. Failures are reported per item.
	Batch(ctx context.Context, reqs []domain.ProfileRequest) ([]domain.BatchItem, error)
	// Tools lists the available calculators.
	Tools() []Tool
}
