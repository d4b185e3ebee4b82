package overtime

import (
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

// Request is an overtime claim. Only approved requests count towards overtime totals.
type Request struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	StartTime       string // HH:mm
	EndTime         string // HH:mm
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

// Minutes is the claimed span. An end time before the start time ends on the next day.
// Unparseable or equal times yield 0 and ok=false.
func (r Request) Minutes() (minutes int, ok bool) {
	sh, sm, ok1 := validator.IsValidClock(r.StartTime)
	eh, em, ok2 := validator.IsValidClock(r.EndTime)
	if !ok1 || !ok2 {
		return 0, false
	}

	start := sh*60 + sm
	end := eh*60 + em
	switch {
	case end == start:
		return 0, false
	case end < start:
		end += 24 * 60
	}
	return end - start, true
}

func (r Request) IsApproved() bool {
	return r.Status == approval.StatusApproved
}
