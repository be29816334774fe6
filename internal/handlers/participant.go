package handlers

import (
	"net/http"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(participantService *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

type ProvisionRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100" example:"Ada Lovelace"`
	TeamID *uint  `json:"team_id,omitempty" example:"3"`
}

type ImportResponse struct {
	Imported int `json:"imported" example:"42"`
}

// Provision godoc
// @Summary      Provision a participant
// @Description  Create a participant with a server-minted token and all meal slots unredeemed
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProvisionRequest true "Participant data"
// @Success      201 {object} Participant
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/participants [post]
func (h *ParticipantHandler) Provision(c *gin.Context) {
	var req ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	participant, err := h.participantService.Provision(req.Name, req.TeamID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// Import godoc
// @Summary      Bulk import participants
// @Description  Import participants from a CSV body with columns name[,team]
// @Tags         participants
// @Accept       text/csv
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ImportResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/participants/import [post]
func (h *ParticipantHandler) Import(c *gin.Context) {
	count, err := h.participantService.ImportCSV(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ImportResponse{Imported: count})
}

// List godoc
// @Summary      List participants
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Participant
// @Router       /api/v1/participants [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.participantService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list participants"})
		return
	}

	c.JSON(http.StatusOK, participants)
}

// Get godoc
// @Summary      Get a participant by token
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        token path string true "Participant token"
// @Success      200 {object} Participant
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/participants/{token} [get]
func (h *ParticipantHandler) Get(c *gin.Context) {
	participant, err := h.participantService.GetByToken(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, participant)
}
