package handler

import (
	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

// Success responses share the {"success": true, ...} envelope.

type successResponse struct {
	Success bool `json:"success"`
}

var okResponse = successResponse{Success: true}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type meResponse struct {
	Success bool             `json:"success"`
	User    *domain.Identity `json:"user"`
	IsAdmin bool             `json:"is_admin"`
}

type createLotResponse struct {
	Success bool `json:"success"`
	ports.CreateLotResult
}

type importResponse struct {
	Success bool `json:"success"`
	ports.ImportResult
}

type catalogResponse struct {
	Success bool `json:"success"`
	ports.CatalogPage
}

type lotResponse struct {
	Success  bool                 `json:"success"`
	Lot      *domain.CatalogEntry `json:"lot"`
	Reviews  []domain.LotReview   `json:"reviews"`
	MyReview *domain.Review       `json:"my_review"`
}

type profileResponse struct {
	Success bool `json:"success"`
	ports.ProfileView
}
