package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dopust-hr/leave-backend-go/internal/domain/auth"
	"github.com/dopust-hr/leave-backend-go/internal/domain/leave"
	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
	"github.com/dopust-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/dopust-hr/leave-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	// Request
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)
	ListAllRequests(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	// Leave
	ListAllLeaves(w http.ResponseWriter, r *http.Request)
	DeleteLeave(w http.ResponseWriter, r *http.Request)
	// Type
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrAuthenticationRequired)
		return
	}

	var req leave.CreateRequestRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := req.Validate(); err != nil {
		slog.Info("CreateRequest validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	created, err := h.leaveService.CreateRequest(r.Context(), userID, req)
	if err != nil {
		slog.Info("CreateRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request created successfully", created)
}

// ListMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrAuthenticationRequired)
		return
	}

	requests, err := h.leaveService.ListMyRequests(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListAllRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListAllRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListAllRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// UpdateStatus implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateStatusRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := req.Validate(); err != nil {
		slog.Info("UpdateStatus validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	if err := h.leaveService.UpdateStatus(r.Context(), req); err != nil {
		slog.Info("UpdateStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request status updated successfully", nil)
}

// Stats implements LeaveHandler.
func (h *LeaveHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	var year *int
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			response.HandleError(w, leave.ErrInvalidYear)
			return
		}
		year = &y
	}

	stats, err := h.leaveService.Stats(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// ListAllLeaves implements LeaveHandler.
func (h *LeaveHandlerImpl) ListAllLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveService.ListAllLeaves(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}

// DeleteLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrAuthenticationRequired)
		return
	}

	rawID := chi.URLParam(r, "leaveId")
	if rawID == "" {
		response.HandleError(w, leave.ErrLeaveIDRequired)
		return
	}

	leaveID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response.HandleError(w, leave.ErrInvalidLeaveID)
		return
	}

	isAdmin := claims.UserType == user.TypeAdmin
	if err := h.leaveService.DeleteLeave(r.Context(), claims.UserID, isAdmin, leaveID); err != nil {
		slog.Info("DeleteLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave deleted successfully", nil)
}

// ListLeaveTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}
