package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByLineUserID(ctx context.Context, lineUserID string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// ListActive returns the roster used by reports.
	ListActive(ctx context.Context) ([]Employee, error)
	SetActive(ctx context.Context, id string, active bool) error
}
