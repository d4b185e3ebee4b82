package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, policy ShiftPolicy) (ShiftPolicy, error)
	GetByID(ctx context.Context, id string) (ShiftPolicy, error)
	List(ctx context.Context) ([]ShiftPolicy, error)
	Update(ctx context.Context, policy ShiftPolicy) (ShiftPolicy, error)
	Delete(ctx context.Context, id string) error

	// ClearDefault unsets IsDefault on every policy except keepID.
	ClearDefault(ctx context.Context, keepID string) error

	// CountAssigned returns how many employees reference the policy explicitly.
	CountAssigned(ctx context.Context, id string) (int64, error)
}
