package dto

import "minflow/internal/models"

// CreateCategoryRequest represents the request payload for creating a
// user-scoped category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryListResponse represents the categories visible to a user: the
// shared defaults plus the user's own
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
	Total      int64             `json:"total"`
}
