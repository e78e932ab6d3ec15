package handler

import "github.com/inkwell/blog-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createPostRequest struct {
	Title   string `json:"title"   validate:"required"`
	Summary string `json:"summary" validate:"required"`
	Content string `json:"content" validate:"required"`
	Status  int    `json:"status"`
	OwnerID int64  `json:"ownerId" validate:"required,gt=0"`
}

type ownerRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type updatePostRequest struct {
	Title   *string       `json:"title"`
	Summary *string       `json:"summary"`
	Content *string       `json:"content"`
	Status  *int          `json:"status"`
	OwnerID *int64        `json:"ownerId" validate:"omitempty,gt=0"`
	Owner   *ownerRequest `json:"owner"`
}

// postListResponse documents the post listing envelope.
type postListResponse struct {
	Data         []domain.Post `json:"data"`
	Total        int64         `json:"total"`
	CurrentPage  int           `json:"currentPage"`
	ItemsPerPage int           `json:"itemsPerPage"`
}
