package testutil

import (
	"context"
	"errors"

	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/repository"
)

// ErrInjected is returned by FlakyLineItemRepo for calls configured to fail.
var ErrInjected = errors.New("injected storage failure")

// FlakyLineItemRepo wraps a real LineItemRepo and fails selected
// operations, for exercising partial-failure paths in batch operations.
type FlakyLineItemRepo struct {
	Inner repository.LineItemRepo

	// FailCreateDescriptions lists descriptions whose Create call fails.
	FailCreateDescriptions map[string]bool
	// FailDeleteIDs lists row ids whose Delete call fails.
	FailDeleteIDs map[int64]bool
	// FailUpdates makes every Update call fail.
	FailUpdates bool
}

func (f *FlakyLineItemRepo) Create(ctx context.Context, li *domain.LineItem) error {
	if f.FailCreateDescriptions[li.Description] {
		return ErrInjected
	}
	return f.Inner.Create(ctx, li)
}

func (f *FlakyLineItemRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.LineItem, error) {
	return f.Inner.ListByProject(ctx, projectID)
}

func (f *FlakyLineItemRepo) Update(ctx context.Context, li *domain.LineItem) error {
	if f.FailUpdates {
		return ErrInjected
	}
	return f.Inner.Update(ctx, li)
}

func (f *FlakyLineItemRepo) Delete(ctx context.Context, id int64) error {
	if f.FailDeleteIDs[id] {
		return ErrInjected
	}
	return f.Inner.Delete(ctx, id)
}

func (f *FlakyLineItemRepo) DeleteByProject(ctx context.Context, projectID int64) (int64, error) {
	return f.Inner.DeleteByProject(ctx, projectID)
}
