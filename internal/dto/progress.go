package dto

import (
	"stacknori/internal/model"
	"stacknori/internal/service"
)

// ProgressUpdateRequest completed 為必填，false 亦為有效值
// swagger:model dto.ProgressUpdateRequest
type ProgressUpdateRequest struct {
	Completed *bool `json:"completed" validate:"required" example:"true"`
}

// swagger:model dto.ProgressUpdateResponse
type ProgressUpdateResponse struct {
	Success     bool           `json:"success" example:"true"`
	ItemID      int            `json:"item_id" example:"1"`
	ItemType    model.ItemType `json:"item_type" example:"roadmap"`
	IsCompleted bool           `json:"is_completed" example:"true"`
}

// ProgressOverviewQuery GET /progress 的 query string
type ProgressOverviewQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=frontend backend devops"`
	Type     string `query:"type" validate:"omitempty,oneof=roadmap material"`
}

// swagger:model dto.ProgressOverviewResponse
type ProgressOverviewResponse struct {
	Progress   []service.ProgressView `json:"progress"`
	Statistics service.Statistics     `json:"statistics"`
}
