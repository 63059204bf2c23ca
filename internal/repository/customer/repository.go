package customer

import (
	"context"

	"mock-crm/internal/domain"
)

// MutateFunc edits a customer in place. Returning an error aborts the update
// and leaves the stored record untouched.
type MutateFunc func(c *domain.Customer) error

// Repository stores customers keyed by member number.
type Repository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, memberNumber string) (*domain.Customer, error)
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, memberNumber string, mutate MutateFunc) (*domain.Customer, error)
}
