package balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"splitledger/internal/group"
	"splitledger/pkg/middleware"
	"splitledger/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.GroupSummary)
	r.Get("/me", h.MyBalance)

	return r
}

// GroupSummary handles GET /balances/group/{groupId}
// @Summary      Get group balances
// @Description  Get every member's net position in a group plus the minimal transfers that settle them
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupSummary}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/group/{groupId} [get]
func (h *Handler) GroupSummary(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	summary, err := h.service.GroupSummary(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

// MyBalance handles GET /balances/me
// @Summary      Get my overall balance
// @Description  Fold the authenticated user's net position across all their groups
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=OverallBalance}
// @Failure      401 {object} response.APIResponse
// @Router       /balances/me [get]
func (h *Handler) MyBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	overall, err := h.service.UserOverallBalance(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute balance")
		return
	}

	response.JSON(w, http.StatusOK, overall)
}
