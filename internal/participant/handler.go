package participant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/voyago/tripsplit/pkg/middleware"
	"github.com/voyago/tripsplit/pkg/response"
)

// Handler handles HTTP requests for participant operations
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new participant handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

// Routes returns the router for participant endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Add)
	r.Get("/", h.ListByTrip)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Remove)
	r.Post("/link", h.Link)

	return r
}

// Add handles POST /participants
// @Summary      Add a participant to a trip
// @Description  Add a roster entry by name; an invite token is generated so the person can claim it later
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request body AddParticipantRequest true "Participant to add"
// @Success      201 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /participants [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	participant, err := h.service.Add(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to add participant")
		return
	}

	response.JSON(w, http.StatusCreated, participant.ToResponse())
}

// ListByTrip handles GET /participants?trip_id=
// @Summary      List a trip's roster
// @Tags         participants
// @Produce      json
// @Param        trip_id query int true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]ParticipantResponse}
// @Router       /participants [get]
func (h *Handler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(r.URL.Query().Get("trip_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip_id")
		return
	}

	participants, err := h.service.ListByTripID(r.Context(), tripID)
	if err != nil {
		response.InternalError(w, "Failed to list participants")
		return
	}

	responses := make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		responses[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// GetByID handles GET /participants/{id}
// @Summary      Get a participant
// @Tags         participants
// @Produce      json
// @Param        id path int true "Participant ID"
// @Success      200 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /participants/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	participant, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get participant")
		return
	}

	response.JSON(w, http.StatusOK, participant.ToResponse())
}

// Update handles PUT /participants/{id}
// @Summary      Update a participant's name or email
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        id path int true "Participant ID"
// @Param        request body UpdateParticipantRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /participants/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	var req UpdateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	participant, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update participant")
		return
	}

	response.JSON(w, http.StatusOK, participant.ToResponse())
}

// Link handles POST /participants/link
// @Summary      Claim a roster entry with an invite token
// @Description  Links the authenticated user's account to the participant that owns the token
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request body LinkParticipantRequest true "Invite token"
// @Success      200 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /participants/link [post]
func (h *Handler) Link(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req LinkParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	participant, err := h.service.Link(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInviteTokenNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyLinked):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to link participant")
		}
		return
	}

	response.JSON(w, http.StatusOK, participant.ToResponse())
}

// Remove handles DELETE /participants/{id}
// @Summary      Remove a participant from the roster
// @Description  Removes the participant and cascades removal of their splits
// @Tags         participants
// @Produce      json
// @Param        id path int true "Participant ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /participants/{id} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrParticipantNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrHasPaidExpenses):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to remove participant")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "participant removed"})
}
