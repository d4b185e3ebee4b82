package approval

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

var (
	ErrAlreadyProcessed = errors.New("request has already been approved or rejected")
	ErrNotOwner         = errors.New("request belongs to another employee")
)

// Status is the lifecycle shared by leave, overtime and shift-swap requests.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.IsValid()
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "รออนุมัติ"
	case StatusApproved:
		return "อนุมัติ"
	case StatusRejected:
		return "ไม่อนุมัติ"
	}
	return string(s)
}

// Review is the outcome an admin records on a pending request.
type Review struct {
	Status          Status
	ReviewedBy      string
	ReviewedAt      time.Time
	RejectionReason *string
}

// ReviewRequest is the body of the approve and reject endpoints.
type ReviewRequest struct {
	ID     string  `json:"-"`
	Reason *string `json:"reason,omitempty"`
}

// Validate checks a rejection; approvals need only the ID.
func (r *ReviewRequest) Validate(rejecting bool) error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if rejecting && (r.Reason == nil || validator.IsEmpty(*r.Reason)) {
		errs.Add("reason", "rejection reason is required")
	}

	return errs.Err()
}
