package handlers

import (
	"net/http"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ScoringHandler struct {
	scoringService *services.ScoringService
}

func NewScoringHandler(scoringService *services.ScoringService) *ScoringHandler {
	return &ScoringHandler{scoringService: scoringService}
}

type SubmitScoreRequest struct {
	TeamID       uint `json:"team_id" binding:"required" example:"3"`
	Innovation   int  `json:"innovation" binding:"min=0,max=10" example:"8"`
	Execution    int  `json:"execution" binding:"min=0,max=10" example:"7"`
	Design       int  `json:"design" binding:"min=0,max=10" example:"9"`
	Presentation int  `json:"presentation" binding:"min=0,max=10" example:"6"`
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100" example:"Null Pointers"`
}

// Submit godoc
// @Summary      Submit a rubric score
// @Description  Upsert the calling judge's rubric for a team
// @Tags         scores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubmitScoreRequest true "Rubric values"
// @Success      200 {object} Score
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/scores [post]
func (h *ScoringHandler) Submit(c *gin.Context) {
	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	judgeID := c.GetUint("staff_id")
	score, err := h.scoringService.SubmitScore(judgeID, req.TeamID, req.Innovation, req.Execution, req.Design, req.Presentation)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, score)
}

// List godoc
// @Summary      List all scores
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Score
// @Router       /api/v1/scores [get]
func (h *ScoringHandler) List(c *gin.Context) {
	scores, err := h.scoringService.ListScores()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list scores"})
		return
	}

	c.JSON(http.StatusOK, scores)
}

// Leaderboard godoc
// @Summary      Ranked team standings
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} services.TeamStanding
// @Router       /api/v1/scores/leaderboard [get]
func (h *ScoringHandler) Leaderboard(c *gin.Context) {
	standings, err := h.scoringService.Leaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build leaderboard"})
		return
	}

	c.JSON(http.StatusOK, standings)
}

// Export godoc
// @Summary      Export scores as CSV
// @Tags         scores
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200 {string} string "CSV payload"
// @Router       /api/v1/scores/export [get]
func (h *ScoringHandler) Export(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="scores.csv"`)

	if err := h.scoringService.ExportCSV(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to export scores"})
		return
	}
}

// CreateTeam godoc
// @Summary      Create a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTeamRequest true "Team data"
// @Success      201 {object} Team
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/teams [post]
func (h *ScoringHandler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.scoringService.CreateTeam(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, team)
}

// ListTeams godoc
// @Summary      List teams
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Team
// @Router       /api/v1/teams [get]
func (h *ScoringHandler) ListTeams(c *gin.Context) {
	teams, err := h.scoringService.ListTeams()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list teams"})
		return
	}

	c.JSON(http.StatusOK, teams)
}
