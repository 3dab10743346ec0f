package dto

import "github.com/jhoicas/storetrack-api/internal/domain/entity"

// CreateCategoryRequest body para POST /categories.
type CreateCategoryRequest struct {
	Description string  `json:"description"`
	ParentID    *string `json:"parentId"`
}

// UpdateCategoryRequest body para PUT /categories/:id.
// ParentID nil conserva el padre; "" la convierte en raíz.
type UpdateCategoryRequest struct {
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
}

// CategoryResponse categoría con sus hijos (recursivo).
type CategoryResponse struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	ParentID    *string            `json:"parentId"`
	Children    []CategoryResponse `json:"children,omitempty"`
}

// NewCategoryResponse mapea la categoría y su subárbol ya construido.
func NewCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	out := &CategoryResponse{ID: c.ID, Description: c.Description, ParentID: c.ParentID}
	if len(c.Children) > 0 {
		out.Children = make([]CategoryResponse, 0, len(c.Children))
		for _, ch := range c.Children {
			out.Children = append(out.Children, *NewCategoryResponse(ch))
		}
	}
	return out
}
