package mock

import (
	"context"
	"time"

	"github.com/fwojciec/lorekeep"
)

var _ lorekeep.CacheService = (*CacheService)(nil)

// CacheService is a mock implementation of lorekeep.CacheService.
type CacheService struct {
	GetFn   func(ctx context.Context, tool string, params lorekeep.Params, maxAge time.Duration, v any) (bool, error)
	SetFn   func(ctx context.Context, tool string, params lorekeep.Params, v any) error
	SweepFn func(ctx context.Context) (int64, error)
	ResetFn func(ctx context.Context) error
}

func (s *CacheService) Get(ctx context.Context, tool string, params lorekeep.Params, maxAge time.Duration, v any) (bool, error) {
	return s.GetFn(ctx, tool, params, maxAge, v)
}

func (s *CacheService) Set(ctx context.Context, tool string, params lorekeep.Params, v any) error {
	return s.SetFn(ctx, tool, params, v)
}

func (s *CacheService) Sweep(ctx context.Context) (int64, error) {
	return s.SweepFn(ctx)
}

func (s *CacheService) Reset(ctx context.Context) error {
	return s.ResetFn(ctx)
}
