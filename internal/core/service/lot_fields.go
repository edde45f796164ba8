package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

var textPolicy = bluemonday.StrictPolicy()

// lotFields is the shared shape both lot input variants normalize into.
type lotFields struct {
	Name        string
	Roaster     string
	Country     *string
	Region      *string
	Variety     *string
	Process     *string
	RoastLevel  *string
	FlavorNotes *string
	ImageSource *string
}

func fieldsFromCreate(in ports.CreateLotInput) lotFields {
	return lotFields{
		Name:        cleanText(in.Name),
		Roaster:     cleanText(in.Roaster),
		Country:     optional(in.Country),
		Region:      optional(in.Region),
		Variety:     optional(in.Variety),
		Process:     optional(in.Process),
		RoastLevel:  optional(in.RoastLevel),
		FlavorNotes: optional(in.FlavorNotes),
	}
}

func fieldsFromImport(rec ports.ImportRecord) lotFields {
	return lotFields{
		Name:        cleanText(deref(rec.Name)),
		Roaster:     cleanText(deref(rec.Roaster)),
		Country:     optionalPtr(rec.Country),
		Region:      optionalPtr(rec.Region),
		Variety:     optionalPtr(rec.Variety),
		Process:     optionalPtr(rec.Process),
		RoastLevel:  optionalPtr(rec.RoastLevel),
		FlavorNotes: optionalPtr(rec.FlavorNotes),
		ImageSource: trimmedPtr(rec.ImageURL),
	}
}

// validate checks the rules that survive normalization: name and roaster
// must not be blank once whitespace and markup are gone.
func (f lotFields) validate() error {
	var out domain.ValidationError
	if f.Name == "" {
		out.Violations = append(out.Violations, domain.FieldViolation{Field: "name", Rule: "required", Message: "name is required"})
	}
	if f.Roaster == "" {
		out.Violations = append(out.Violations, domain.FieldViolation{Field: "roaster", Rule: "required", Message: "roaster is required"})
	}
	if len(out.Violations) > 0 {
		return &out
	}
	return nil
}

func (f lotFields) lot(id string, imageURL *string) *domain.Lot {
	return &domain.Lot{
		ID:          id,
		Name:        f.Name,
		Roaster:     f.Roaster,
		Country:     f.Country,
		Region:      f.Region,
		Variety:     f.Variety,
		Process:     f.Process,
		RoastLevel:  f.RoastLevel,
		FlavorNotes: f.FlavorNotes,
		ImageURL:    imageURL,
	}
}

// cleanText strips markup and surrounding whitespace. Entities escaped by the
// sanitizer are decoded again so "R&D" is stored as typed.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(strings.TrimSpace(s))))
}

// optional returns nil for blank input.
func optional(s string) *string {
	s = cleanText(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return optional(*p)
}

// trimmedPtr keeps the value verbatim apart from surrounding whitespace.
func trimmedPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
