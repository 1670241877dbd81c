package plancache

//go:generate mockgen -source=$GOFILE -destination=backend_mocks_test.go -package=plancache_test

import (
	"context"

	"github.com/fortranov/sportproject/internal/training"
)

// PlanBackend is the source of truth the cache reads through to.
type PlanBackend interface {
	GetPlan(ctx context.Context, uin string) (*training.TrainingPlan, error)
	CreatePlan(ctx context.Context, req training.CreatePlanRequest) (*training.TrainingPlan, error)
	DeletePlan(ctx context.Context, uin string) error
}
