package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{overtimeService: overtimeService}
}

func (h *overtimeHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req overtime.CreateOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Overtime request submitted", result)
}

func (h *overtimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	var filter overtime.OvertimeFilter
	_, filter.Status, filter.Page, filter.Limit = requestFilter(r)

	result, err := h.overtimeService.ListMine(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *overtimeHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	var filter overtime.OvertimeFilter
	filter.EmployeeID, filter.Status, filter.Page, filter.Limit = requestFilter(r)

	result, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *overtimeHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *overtimeHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime request approved", result)
}

func (h *overtimeHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime request rejected", result)
}
