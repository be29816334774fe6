package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/services"
	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/ws"

	"github.com/gin-gonic/gin"
)

const redemptionFeedTopic = "redemptions"

type RedemptionHandler struct {
	redemptionService *services.RedemptionService
	hub               *ws.Hub
}

func NewRedemptionHandler(redemptionService *services.RedemptionService, hub *ws.Hub) *RedemptionHandler {
	return &RedemptionHandler{redemptionService: redemptionService, hub: hub}
}

type AttemptRequest struct {
	Token string `json:"token" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	// ScannedAt overrides the server clock when the kiosk queued the scan
	// offline; RFC3339.
	ScannedAt string `json:"scanned_at,omitempty" example:"2026-09-05T07:15:00Z"`
}

type StatusResponse struct {
	Token string          `json:"token"`
	Slots map[string]bool `json:"slots"`
}

// Attempt godoc
// @Summary      Attempt a meal redemption
// @Description  Redeem the active meal for a scanned participant token, at most once per slot
// @Tags         redemptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AttemptRequest true "Scan data"
// @Success      200 {object} services.AttemptResult
// @Failure      404 {object} services.AttemptResult "unknown participant"
// @Failure      409 {object} services.AttemptResult "already redeemed"
// @Failure      422 {object} services.AttemptResult "no active meal window"
// @Failure      503 {object} services.AttemptResult "store unavailable, outcome indeterminate"
// @Router       /api/v1/redemptions/attempt [post]
func (h *RedemptionHandler) Attempt(c *gin.Context) {
	var req AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var result services.AttemptResult
	var err error
	if req.ScannedAt != "" {
		at, parseErr := time.Parse(time.RFC3339, req.ScannedAt)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "scanned_at must be RFC3339"})
			return
		}
		result, err = h.redemptionService.Attempt(c.Request.Context(), req.Token, at)
	} else {
		result, err = h.redemptionService.AttemptNow(c.Request.Context(), req.Token)
	}

	if err != nil {
		// Indeterminate: the conditional write may have committed. The kiosk
		// must re-check via the status endpoint before serving or denying.
		c.JSON(http.StatusServiceUnavailable, result)
		return
	}

	if result.Served {
		h.hub.Broadcast(redemptionFeedTopic, ws.WSMessage{
			Type: "meal_served",
			Data: gin.H{"token": req.Token, "slot": result.Slot},
		})
		c.JSON(http.StatusOK, result)
		return
	}

	switch result.Reason {
	case services.ReasonUnknownParticipant:
		c.JSON(http.StatusNotFound, result)
	case services.ReasonDuplicateRedemption:
		c.JSON(http.StatusConflict, result)
	default:
		c.JSON(http.StatusUnprocessableEntity, result)
	}
}

// Status godoc
// @Summary      Check redemption status
// @Description  Read the redeemed flag per meal slot without mutating anything
// @Tags         redemptions
// @Produce      json
// @Security     BearerAuth
// @Param        token path string true "Participant token"
// @Success      200 {object} StatusResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /api/v1/redemptions/status/{token} [get]
func (h *RedemptionHandler) Status(c *gin.Context) {
	token := c.Param("token")

	status, err := h.redemptionService.Status(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrUnknownParticipant) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown participant"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable"})
		return
	}

	slots := make(map[string]bool, len(status))
	for slot, redeemed := range status {
		slots[string(slot)] = redeemed
	}
	c.JSON(http.StatusOK, StatusResponse{Token: token, Slots: slots})
}
