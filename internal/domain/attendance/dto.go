package attendance

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string                `json:"-"`
	Latitude   *float64              `json:"latitude,omitempty"`
	Longitude  *float64              `json:"longitude,omitempty"`
	Location   *string               `json:"location,omitempty"`
	Note       *string               `json:"note,omitempty"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	validateCoordinates(&errs, r.Latitude, r.Longitude)
	validatePhoto(&errs, r.FileHeader)
	return errs.Err()
}

type CheckOutRequest struct {
	EmployeeID string                `json:"-"`
	Latitude   *float64              `json:"latitude,omitempty"`
	Longitude  *float64              `json:"longitude,omitempty"`
	Note       *string               `json:"note,omitempty"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	validateCoordinates(&errs, r.Latitude, r.Longitude)
	validatePhoto(&errs, r.FileHeader)
	return errs.Err()
}

type ChangeStatusRequest struct {
	EmployeeID string  `json:"-"`
	Status     string  `json:"status"`
	Note       *string `json:"note,omitempty"`
}

func (r *ChangeStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	st, ok := ParseStatus(r.Status)
	switch {
	case !ok:
		errs.Add("status", "status must be a valid attendance status")
	case st == StatusCheckedIn || st == StatusLate || st == StatusCheckedOut || st == StatusOnLeave:
		errs.Add("status", "use check-in, check-out or a leave request for this status")
	}

	return errs.Err()
}

func validateCoordinates(errs *validator.ValidationErrors, lat, lng *float64) {
	if (lat == nil) != (lng == nil) {
		errs.Add("latitude", "latitude and longitude must be sent together")
		return
	}
	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if lng != nil && !validator.IsValidLongitude(*lng) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
}

// The photo is optional; when present it must be a small jpg or png.
func validatePhoto(errs *validator.ValidationErrors, fh *multipart.FileHeader) {
	if fh == nil {
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs.Add("file", "invalid file type: only jpg, jpeg, png allowed")
	} else if fh.Size > 10<<20 { // 10MB
		errs.Add("file", "attendance photo size must not exceed 10MB")
	}
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     string   `json:"employee_name,omitempty"`
	Date             string   `json:"date"`
	CheckInTime      *string  `json:"check_in_time,omitempty"`
	CheckOutTime     *string  `json:"check_out_time,omitempty"`
	Status           string   `json:"status"`
	StatusLabel      string   `json:"status_label"`
	IsLate           bool     `json:"is_late"`
	LateMinutes      int      `json:"late_minutes"`
	Location         *string  `json:"location,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	DistanceFromSite *float64 `json:"distance_from_site,omitempty"`
	PhotoURL         *string  `json:"photo_url,omitempty"`
	Note             *string  `json:"note,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// CheckOutResponse carries overtime for display only; overtime is credited
// through approved overtime requests.
type CheckOutResponse struct {
	AttendanceResponse
	OTMinutes  int  `json:"ot_minutes"`
	OTEligible bool `json:"ot_eligible"`
}

type TodayResponse struct {
	Date         string              `json:"date"`
	ShiftName    string              `json:"shift_name"`
	CheckInTime  string              `json:"shift_check_in"`
	CheckOutTime string              `json:"shift_check_out"`
	Attendance   *AttendanceResponse `json:"attendance,omitempty"`
	CanCheckIn   bool                `json:"can_check_in"`
	CanCheckOut  bool                `json:"can_check_out"`
	NextStatuses []string            `json:"next_statuses"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// FILTERS
// ========================================

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, check_in_time, check_out_time, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.Status != nil && *f.Status != "" {
		if _, ok := ParseStatus(*f.Status); !ok {
			errs.Add("status", "status must be a valid attendance status")
		}
	}

	for field, value := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs.Add(field, field+" must be in YYYY-MM-DD format")
			}
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "check_in_time", "check_out_time", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs.Add("sort_by", "sort_by must be one of: date, check_in_time, check_out_time, status")
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	return errs.Err()
}

// ========================================
// ADMIN DTOs
// ========================================

// CreateAttendanceRequest lets an admin record a day manually, e.g. a forgotten check-in.
// LateMinutes is taken as given; manual entries are never evaluated against a policy.
type CreateAttendanceRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`                     // YYYY-MM-DD
	CheckInTime  *string `json:"check_in_time,omitempty"`  // HH:mm
	CheckOutTime *string `json:"check_out_time,omitempty"` // HH:mm
	Status       string  `json:"status"`
	LateMinutes  int     `json:"late_minutes"`
	Location     *string `json:"location,omitempty"`
	Note         *string `json:"note,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if _, ok := ParseStatus(r.Status); !ok {
		errs.Add("status", "status must be a valid attendance status")
	}
	if r.CheckInTime != nil {
		if _, _, ok := validator.IsValidClock(*r.CheckInTime); !ok {
			errs.Add("check_in_time", "check_in_time must be in HH:mm format")
		}
	}
	if r.CheckOutTime != nil {
		if _, _, ok := validator.IsValidClock(*r.CheckOutTime); !ok {
			errs.Add("check_out_time", "check_out_time must be in HH:mm format")
		}
	}
	if r.LateMinutes < 0 {
		errs.Add("late_minutes", "late_minutes must be a non-negative number")
	}

	return errs.Err()
}

// UpdateAttendanceRequest fixes wrong attendance data. Changing the check-in
// time does not recompute LateMinutes; send late_minutes explicitly.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // HH:mm
	CheckOutTime *string `json:"check_out_time,omitempty"` // HH:mm
	Status       *string `json:"status,omitempty"`
	LateMinutes  *int    `json:"late_minutes,omitempty"`
	Location     *string `json:"location,omitempty"`
	Note         *string `json:"note,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CheckInTime != nil {
		if _, _, ok := validator.IsValidClock(*r.CheckInTime); !ok {
			errs.Add("check_in_time", "check_in_time must be in HH:mm format")
		}
	}
	if r.CheckOutTime != nil {
		if _, _, ok := validator.IsValidClock(*r.CheckOutTime); !ok {
			errs.Add("check_out_time", "check_out_time must be in HH:mm format")
		}
	}
	if r.Status != nil {
		if _, ok := ParseStatus(*r.Status); !ok {
			errs.Add("status", "status must be a valid attendance status")
		}
	}
	if r.LateMinutes != nil && *r.LateMinutes < 0 {
		errs.Add("late_minutes", "late_minutes must be a non-negative number")
	}

	return errs.Err()
}
