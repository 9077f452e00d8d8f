package dto

import "stacknori/internal/service"

// MaterialSearchQuery 教材搜尋的 query string
type MaterialSearchQuery struct {
	Keyword    string `query:"keyword" validate:"max=255"`
	Difficulty string `query:"difficulty" validate:"omitempty,oneof=beginner intermediate"`
	Type       string `query:"type" validate:"omitempty,oneof=document video"`
	Page       int    `query:"page" validate:"omitempty,min=1"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// swagger:model dto.PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"20"`
	Total      int `json:"total" example:"42"`
	TotalPages int `json:"total_pages" example:"3"`
}

// swagger:model dto.MaterialListResponse
type MaterialListResponse struct {
	Materials  []service.MaterialView `json:"materials"`
	Pagination PaginationMeta         `json:"pagination"`
}

func NewMaterialListResponse(p *service.MaterialPage) MaterialListResponse {
	return MaterialListResponse{
		Materials: p.Items,
		Pagination: PaginationMeta{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
}

// swagger:model dto.CreateMaterialRequest
type CreateMaterialRequest struct {
	Title      string   `json:"title" validate:"required,max=255" example:"FastAPI Tutorial"`
	URL        string   `json:"url" validate:"required,url" example:"https://fastapi.tiangolo.com/tutorial/"`
	Difficulty string   `json:"difficulty" validate:"required,oneof=beginner intermediate" example:"beginner"`
	Type       string   `json:"type" validate:"required,oneof=document video" example:"document"`
	Source     *string  `json:"source" example:"official docs"`
	Summary    *string  `json:"summary" example:"Step-by-step guide"`
	Keywords   []string `json:"keywords" example:"python,fastapi"`
}

// swagger:model dto.ScrapResponse
type ScrapResponse struct {
	Success    bool `json:"success" example:"true"`
	IsScrapped bool `json:"is_scrapped" example:"true"`
}
