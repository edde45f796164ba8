package ports

import (
	"context"
	"io"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// CreateLotInput is the manual lot form. ImageURL is accepted but never stored.
type CreateLotInput struct {
	Name        string `json:"name" form:"name" validate:"required,max=200"`
	Roaster     string `json:"roaster" form:"roaster" validate:"required,max=200"`
	Country     string `json:"country" form:"country" validate:"max=100"`
	Region      string `json:"region" form:"region" validate:"max=100"`
	Variety     string `json:"variety" form:"variety" validate:"max=100"`
	Process     string `json:"process" form:"process" validate:"max=100"`
	RoastLevel  string `json:"roast_level" form:"roast_level" validate:"max=50"`
	FlavorNotes string `json:"flavor_notes" form:"flavor_notes" validate:"max=1000"`
	ImageURL    string `json:"image_url" form:"image_url"`
}

// ImportRecord is one element of an import file. Every optional field may be null.
type ImportRecord struct {
	Name        *string `json:"name"`
	Roaster     *string `json:"roaster"`
	Country     *string `json:"country"`
	Region      *string `json:"region"`
	Variety     *string `json:"variety"`
	Process     *string `json:"process"`
	RoastLevel  *string `json:"roast_level"`
	FlavorNotes *string `json:"flavor_notes"`
	ImageURL    *string `json:"image_url"`
}

// ImageUpload is an uploaded image file as received by the transport layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateLotResult reports the created lot. AlreadyExisted is set on an idempotent replay.
type CreateLotResult struct {
	LotID          string `json:"lot_id"`
	AlreadyExisted bool   `json:"already_existed,omitempty"`
}

// ImportResult is the folded outcome of one bulk import.
type ImportResult struct {
	Imported        int      `json:"imported"`
	Failed          int      `json:"failed"`
	Errors          []string `json:"errors"`
	ErrorsTruncated bool     `json:"errors_truncated,omitempty"`
}

type LotService interface {
	CreateLot(ctx context.Context, actor *domain.Identity, input CreateLotInput, image *ImageUpload, idempotencyKey string) (*CreateLotResult, error)
	ImportLots(ctx context.Context, actor *domain.Identity, file io.Reader) (*ImportResult, error)
}
