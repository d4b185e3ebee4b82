package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
	"github.com/cmlabs-hris/line-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SwapHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type swapHandlerImpl struct {
	swapService swap.SwapService
}

func NewSwapHandler(swapService swap.SwapService) SwapHandler {
	return &swapHandlerImpl{swapService: swapService}
}

func (h *swapHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req swap.CreateSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Swap request submitted", result)
}

func (h *swapHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	var filter swap.SwapFilter
	_, filter.Status, filter.Page, filter.Limit = requestFilter(r)

	result, err := h.swapService.ListMine(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *swapHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	var filter swap.SwapFilter
	filter.EmployeeID, filter.Status, filter.Page, filter.Limit = requestFilter(r)

	result, err := h.swapService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *swapHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.swapService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *swapHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Swap request approved", result)
}

func (h *swapHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Swap request rejected", result)
}
