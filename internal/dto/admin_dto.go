package dto

import "github.com/talentbridge/talentbridge-go-api/internal/models"

// AdminBusinessListRequest describes admin listing filters.
type AdminBusinessListRequest struct {
	ApprovalStatus string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Search         string `query:"search"`
	Page           int    `query:"page" validate:"omitempty,min=1"`
	PageSize       int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// AdminBusinessListResponse wraps a page of businesses for review.
type AdminBusinessListResponse struct {
	Items      []BusinessResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewAdminBusinessListResponse builds the admin listing DTO.
func NewAdminBusinessListResponse(businesses []models.Business, pagination PaginationMeta) AdminBusinessListResponse {
	items := make([]BusinessResponse, 0, len(businesses))
	for _, business := range businesses {
		items = append(items, NewBusinessResponse(business))
	}

	return AdminBusinessListResponse{Items: items, Pagination: pagination}
}
