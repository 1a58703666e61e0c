package dto

import (
	"time"

	"jizhang/internal/models"
)

type CategoryRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Icon     string  `json:"icon"`
	Color    string  `json:"color"`
	ParentID *string `json:"parentId"`
	Sort     int     `json:"sort"`
}

func (r *CategoryRequest) ToModel() (*models.Category, error) {
	parentID, err := parseOptionalUUID(r.ParentID, "parentId")
	if err != nil {
		return nil, err
	}
	return &models.Category{
		Name:     r.Name,
		Type:     models.TransactionType(r.Type),
		Icon:     r.Icon,
		Color:    r.Color,
		ParentID: parentID,
		Sort:     r.Sort,
	}, nil
}

type CategoryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
	ParentID  *string `json:"parentId"`
	Sort      int     `json:"sort"`
	CreatedAt string  `json:"createdAt"`
}

func FromCategory(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Type:      string(cat.Type),
		Icon:      cat.Icon,
		Color:     cat.Color,
		ParentID:  uuidString(cat.ParentID),
		Sort:      cat.Sort,
		CreatedAt: cat.CreatedAt.Format(time.RFC3339),
	}
}

func FromCategories(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, FromCategory(&categories[i]))
	}
	return out
}
