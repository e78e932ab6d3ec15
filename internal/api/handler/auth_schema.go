package handler

import "github.com/inkwell/blog-api/internal/core/domain"

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone"    validate:"phone"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Status   int    `json:"status"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type updateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	Phone    *string `json:"phone"    validate:"omitempty,phone"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Status   *int    `json:"status"`
}

type registerResponse struct {
	Status string       `json:"status"`
	User   *domain.User `json:"user"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Status       string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// userListResponse documents the user listing envelope.
type userListResponse struct {
	Data         []domain.User `json:"data"`
	Total        int64         `json:"total"`
	CurrentPage  int           `json:"currentPage"`
	ItemsPerPage int           `json:"itemsPerPage"`
}

const statusSuccess = "success"
