package handlers

import "github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Participant = models.Participant
type Team = models.Team
type Score = models.Score
