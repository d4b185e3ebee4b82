package swap

import (
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
)

// Request asks to work NewDate instead of OldDate.
type Request struct {
	ID              string
	EmployeeID      string
	OldDate         time.Time
	NewDate         time.Time
	Reason          string
	Status          approval.Status
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}
