package dto

import "time"

// swagger:model dto.HealthResponse
type HealthResponse struct {
	Status      string    `json:"status" example:"ok"`
	Environment string    `json:"environment" example:"development"`
	Timestamp   time.Time `json:"timestamp" example:"2025-05-01T15:04:05Z"`
}
