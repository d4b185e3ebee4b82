package shift

import "context"

type ShiftService interface {
	Create(ctx context.Context, req ShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, req ShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (ShiftResponse, error)
	List(ctx context.Context) ([]ShiftResponse, error)

	// PolicyFor resolves the policy governing an employee.
	PolicyFor(ctx context.Context, employeeID string) (ShiftPolicy, error)
}
