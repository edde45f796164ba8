package service

import (
	"strings"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// AdminPolicy decides who may create and import lots.
type AdminPolicy struct {
	emails map[string]struct{}
}

// NewAdminPolicy builds the allow-list. Entries are trimmed and compared
// case-insensitively; blank entries are ignored.
func NewAdminPolicy(emails []string) *AdminPolicy {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if k := normalizeEmail(e); k != "" {
			set[k] = struct{}{}
		}
	}
	return &AdminPolicy{emails: set}
}

func (p *AdminPolicy) IsAdmin(actor *domain.Identity) bool {
	if actor == nil {
		return false
	}
	k := normalizeEmail(actor.Email)
	if k == "" {
		return false
	}
	_, ok := p.emails[k]
	return ok
}

// Require returns ErrUnauthorized without an identity and ErrForbidden for non-admins.
func (p *AdminPolicy) Require(actor *domain.Identity) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !p.IsAdmin(actor) {
		return domain.ErrForbidden
	}
	return nil
}

func requireIdentity(actor *domain.Identity) error {
	if actor == nil || actor.ID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// requireOwner checks that actor owns a record belonging to ownerID.
func requireOwner(actor *domain.Identity, ownerID string) error {
	if err := requireIdentity(actor); err != nil {
		return err
	}
	if actor.ID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
