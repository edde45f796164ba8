package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

const (
	facetCountry    = "country"
	facetRoastLevel = "roast_level"
)

// CatalogService serves the rating-aggregated read model, through the view
// cache when one is configured.
type CatalogService struct {
	repo  ports.CatalogRepository
	cache ports.ViewCache
	log   zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, cache ports.ViewCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log}
}

func (s *CatalogService) ListLots(ctx context.Context, q ports.CatalogQuery) (*ports.CatalogPage, error) {
	q = NormalizeQuery(q)
	key := queryKey(q)

	var page ports.CatalogPage
	ver, hit := s.cacheGet(ctx, ports.RouteCatalog, key, &page)
	if hit {
		return &page, nil
	}

	lots, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, domain.Upstream(domain.OpReadCatalog, err)
	}
	countries, err := s.repo.DistinctValues(ctx, facetCountry)
	if err != nil {
		return nil, domain.Upstream(domain.OpReadCatalog, err)
	}
	roastLevels, err := s.repo.DistinctValues(ctx, facetRoastLevel)
	if err != nil {
		return nil, domain.Upstream(domain.OpReadCatalog, err)
	}
	if lots == nil {
		lots = []domain.CatalogEntry{}
	}

	page = ports.CatalogPage{
		Lots: lots,
		Facets: ports.Facets{
			Countries:   FacetValues(countries),
			RoastLevels: FacetValues(roastLevels),
		},
	}
	s.cacheSet(ctx, ver, key, page)
	return &page, nil
}

// GetLot returns one catalog entry or domain.ErrLotNotFound.
func (s *CatalogService) GetLot(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrLotNotFound
	}

	route := ports.LotRoute(id)
	var entry domain.CatalogEntry
	ver, hit := s.cacheGet(ctx, route, "entry", &entry)
	if hit {
		return &entry, nil
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrLotNotFound) {
			return nil, err
		}
		return nil, domain.Upstream(domain.OpReadCatalog, err)
	}
	s.cacheSet(ctx, ver, "entry", found)
	return found, nil
}

// cacheGet reports a hit and the version to write a miss back under. A nil
// version means the cache is unusable for this read.
func (s *CatalogService) cacheGet(ctx context.Context, route, key string, dst any) (*ports.ViewVersion, bool) {
	if s.cache == nil {
		return nil, false
	}
	ver, ok, err := s.cache.Get(ctx, route, key, dst)
	if err != nil {
		s.log.Warn().Err(err).Str("route", route).Msg("view cache read failed")
		return nil, false
	}
	return &ver, ok
}

func (s *CatalogService) cacheSet(ctx context.Context, ver *ports.ViewVersion, key string, v any) {
	if s.cache == nil || ver == nil {
		return
	}
	if err := s.cache.Set(ctx, *ver, key, v); err != nil {
		s.log.Warn().Err(err).Str("route", ver.Route).Msg("view cache write failed")
	}
}

// NormalizeQuery trims filter values and resolves the sort.
func NormalizeQuery(q ports.CatalogQuery) ports.CatalogQuery {
	return ports.CatalogQuery{
		Search:     strings.TrimSpace(q.Search),
		Country:    strings.TrimSpace(q.Country),
		RoastLevel: strings.TrimSpace(q.RoastLevel),
		Sort:       domain.ParseCatalogSort(string(q.Sort)),
	}
}

func queryKey(q ports.CatalogQuery) string {
	return strings.Join([]string{"q", q.Search, q.Country, q.RoastLevel, string(q.Sort)}, "|")
}

// FacetValues drops blanks, de-duplicates and sorts values lexicographically.
func FacetValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
