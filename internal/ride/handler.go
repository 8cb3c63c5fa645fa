package ride

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campuspool/ridepool/pkg/middleware"
	"github.com/campuspool/ridepool/pkg/response"
)

// Handler handles HTTP requests for ride operations
type Handler struct {
	service *Service
}

// NewHandler creates a new ride handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for ride endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Post("/{id}/join", h.Join)
	r.Post("/{id}/leave", h.Leave)
	r.Get("/{id}/participants", h.ListParticipants)

	return r
}

// Create handles POST /rides
// @Summary      Create a new ride
// @Description  Create a ride; the caller becomes the organizer and takes the first seat
// @Tags         rides
// @Accept       json
// @Produce      json
// @Param        request body CreateRideRequest true "Ride creation request"
// @Success      201 {object} response.APIResponse{data=RideResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /rides [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	ride, err := h.service.Create(r.Context(), organizerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDeparture), errors.Is(err, ErrInvalidSeatCount):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create ride")
		}
		return
	}

	response.JSON(w, http.StatusCreated, ride.ToResponse())
}

// GetByID handles GET /rides/{id}
// @Summary      Get ride by ID
// @Description  Get a ride with all its participants
// @Tags         rides
// @Produce      json
// @Param        id path string true "Ride ID"
// @Success      200 {object} response.APIResponse{data=RideResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /rides/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ride, participants, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrRideNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get ride")
		return
	}

	resp := ride.ToResponse()
	resp.Participants = make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		resp.Participants[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// List handles GET /rides
// @Summary      List rides
// @Tags         rides
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]RideResponse}
// @Router       /rides [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	rides, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list rides")
		return
	}

	resp := make([]*RideResponse, len(rides))
	for i, ride := range rides {
		resp[i] = ride.ToResponse()
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// UpdateStatus handles PATCH /rides/{id}/status
// @Summary      Update ride status
// @Description  Move the ride through its lifecycle; organizer only
// @Tags         rides
// @Accept       json
// @Produce      json
// @Param        id path string true "Ride ID"
// @Param        request body UpdateStatusRequest true "Status change request"
// @Success      200 {object} response.APIResponse{data=RideResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /rides/{id}/status [patch]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	ride, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrRideNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotOrganizer):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidStatusChange):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update ride status")
		}
		return
	}

	response.JSON(w, http.StatusOK, ride.ToResponse())
}

// Join handles POST /rides/{id}/join
// @Summary      Join a ride
// @Tags         rides
// @Produce      json
// @Param        id path string true "Ride ID"
// @Success      201 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /rides/{id}/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	p, err := h.service.Join(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRideNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyJoined), errors.Is(err, ErrRideFull):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrRideNotJoinable):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to join ride")
		}
		return
	}

	response.JSON(w, http.StatusCreated, p.ToResponse())
}

// Leave handles POST /rides/{id}/leave
// @Summary      Leave a ride
// @Tags         rides
// @Produce      json
// @Param        id path string true "Ride ID"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Router       /rides/{id}/leave [post]
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Leave(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		switch {
		case errors.Is(err, ErrNotParticipant):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrOrganizerCantLeave):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to leave ride")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Left the ride"})
}

// ListParticipants handles GET /rides/{id}/participants
// @Summary      List ride participants
// @Tags         rides
// @Produce      json
// @Param        id path string true "Ride ID"
// @Success      200 {object} response.APIResponse{data=[]ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /rides/{id}/participants [get]
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	_, participants, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrRideNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list participants")
		return
	}

	resp := make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		resp[i] = p.ToResponse()
	}
	response.JSON(w, http.StatusOK, resp)
}
