package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

type ProfileService struct {
	profiles ports.ProfileRepository
	reviews  ports.ReviewRepository
	views    ports.ViewInvalidator
	log      zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, reviews ports.ReviewRepository, views ports.ViewInvalidator, log zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, reviews: reviews, views: views, log: log}
}

// UpdateProfile sets the actor's nickname. A user may only edit their own profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, actor *domain.Identity, input ports.UpdateProfileInput) error {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Nickname = cleanText(input.Nickname)
	if err := validateInput(input); err != nil {
		return err
	}
	if err := requireOwner(actor, input.UserID); err != nil {
		return err
	}

	profile := &domain.Profile{
		ID:        input.UserID,
		Nickname:  input.Nickname,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to upsert profile")
		return domain.Upstream(domain.OpUpdateProfile, err)
	}

	if err := s.views.Invalidate(ctx, ports.RouteProfile); err != nil {
		s.log.Warn().Err(err).Str("route", ports.RouteProfile).Msg("view invalidation failed")
	}
	return nil
}

// GetProfile returns the actor's profile and reviews. A user without a
// profile row gets an empty nickname rather than an error.
func (s *ProfileService) GetProfile(ctx context.Context, actor *domain.Identity) (*ports.ProfileView, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByID(ctx, actor.ID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		profile = &domain.Profile{ID: actor.ID}
	case err != nil:
		return nil, domain.Upstream(domain.OpReadCatalog, err)
	}

	reviews, err := s.reviews.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, domain.Upstream(domain.OpReadCatalog, err)
	}
	if reviews == nil {
		reviews = []domain.UserReview{}
	}
	return &ports.ProfileView{Profile: profile, Reviews: reviews}, nil
}
