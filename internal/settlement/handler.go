package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuspool/ridepool/internal/ride"
	"github.com/campuspool/ridepool/pkg/middleware"
	"github.com/campuspool/ridepool/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Record)
	r.Get("/ride/{rideId}", h.ListByRide)
	r.Get("/ride/{rideId}/summary", h.Summary)

	return r
}

// Record handles POST /settlements
// @Summary      Record a settlement payment
// @Description  Record a payment made outside the app so ride balances reflect it
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body RecordSettlementRequest true "Settlement request"
// @Success      201 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	fromUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req RecordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	settlement, err := h.service.Record(r.Context(), fromUserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ride.ErrRideNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrCannotSettleSelf), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNotRideMember):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to record settlement")
		}
		return
	}

	response.JSON(w, http.StatusCreated, settlement.ToResponse())
}

// ListByRide handles GET /settlements/ride/{rideId}
// @Summary      List recorded settlements for a ride
// @Tags         settlements
// @Produce      json
// @Param        rideId path string true "Ride ID"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/ride/{rideId} [get]
func (h *Handler) ListByRide(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.service.ListByRideID(r.Context(), chi.URLParam(r, "rideId"))
	if err != nil {
		if errors.Is(err, ride.ErrRideNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list settlements")
		return
	}

	resp := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		resp[i] = s.ToResponse()
	}
	response.JSON(w, http.StatusOK, resp)
}

// Summary handles GET /settlements/ride/{rideId}/summary
// @Summary      Get the expense summary for a ride
// @Description  Total spent, per-participant net balances, and the suggested transfer plan
// @Tags         settlements
// @Produce      json
// @Param        rideId path string true "Ride ID"
// @Success      200 {object} response.APIResponse{data=SummaryResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/ride/{rideId}/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), chi.URLParam(r, "rideId"))
	if err != nil {
		if errors.Is(err, ride.ErrRideNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute summary")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
