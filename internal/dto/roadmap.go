package dto

import "stacknori/internal/service"

// swagger:model dto.RoadmapListResponse
type RoadmapListResponse struct {
	Roadmaps []*service.RoadmapView `json:"roadmaps"`
}

// CreateRoadmapRequest 新增或更新路線圖節點；level 省略時由父節點推算
// swagger:model dto.CreateRoadmapRequest
type CreateRoadmapRequest struct {
	Category    string  `json:"category" validate:"required,oneof=frontend backend devops" example:"backend"`
	Name        string  `json:"name" validate:"required,max=255" example:"Go"`
	Level       int     `json:"level" validate:"omitempty,min=1" example:"2"`
	Description *string `json:"description" example:"Go language basics"`
	ParentID    *int    `json:"parent_id" validate:"omitempty,min=1" example:"1"`
}
