package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

const idempotencyHeader = "Idempotency-Key"

type LotHandler struct {
	lots    ports.LotService
	catalog ports.CatalogService
	reviews ports.ReviewService
}

func NewLotHandler(lots ports.LotService, catalog ports.CatalogService, reviews ports.ReviewService) *LotHandler {
	return &LotHandler{lots: lots, catalog: catalog, reviews: reviews}
}

// Create adds one lot. The body is JSON, or multipart with an optional
// "image" file next to the lot fields.
//
// @Summary      Create a lot
// @Tags         lots
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Replay protection key"
// @Param        body             body      ports.CreateLotInput  true   "Lot fields"
// @Param        image            formData  file                  false  "Lot image"
// @Success      201  {object}  createLotResponse
// @Success      200  {object}  createLotResponse  "idempotent replay"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/lots [post]
func (h *LotHandler) Create(c echo.Context) error {
	var in ports.CreateLotInput
	if err := c.Bind(&in); err != nil {
		return bindError(err)
	}

	var image *ports.ImageUpload
	if isMultipart(c) {
		fh, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return bindError(err)
		default:
			f, err := fh.Open()
			if err != nil {
				return bindError(err)
			}
			defer f.Close()
			image = &ports.ImageUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Size:        fh.Size,
				Body:        f,
			}
		}
	}

	res, err := h.lots.CreateLot(c.Request().Context(), actor(c), in, image, c.Request().Header.Get(idempotencyHeader))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, createLotResponse{Success: true, CreateLotResult: *res})
}

// Import bulk-creates lots from a {"lots": [...]} document, sent as the
// multipart "file" field or as the raw request body.
//
// @Summary      Import lots
// @Tags         lots
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  false  "JSON import file"
// @Success      200  {object}  importResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/lots/import [post]
func (h *LotHandler) Import(c echo.Context) error {
	var body io.Reader = c.Request().Body
	if isMultipart(c) {
		fh, err := c.FormFile("file")
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidFile, err)
		}
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidFile, err)
		}
		defer f.Close()
		body = f
	}

	res, err := h.lots.ImportLots(c.Request().Context(), actor(c), body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, importResponse{Success: true, ImportResult: *res})
}

// List returns the catalog with facets.
//
// @Summary      List lots
// @Tags         lots
// @Produce      json
// @Param        search       query  string  false  "Substring of name or roaster"
// @Param        country      query  string  false  "Exact country"
// @Param        roast_level  query  string  false  "Exact roast level"
// @Param        sort         query  string  false  "rating (default) or popularity"
// @Success      200  {object}  catalogResponse
// @Failure      502  {object}  map[string]string
// @Router       /v1/lots [get]
func (h *LotHandler) List(c echo.Context) error {
	q := ports.CatalogQuery{
		Search:     c.QueryParam("search"),
		Country:    c.QueryParam("country"),
		RoastLevel: c.QueryParam("roast_level"),
		Sort:       domain.CatalogSort(c.QueryParam("sort")),
	}
	page, err := h.catalog.ListLots(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, catalogResponse{Success: true, CatalogPage: *page})
}

// Get returns one lot with its latest reviews and, for a signed-in user,
// their own review.
//
// @Summary      Get a lot
// @Tags         lots
// @Produce      json
// @Param        id   path      string  true  "Lot ID"
// @Success      200  {object}  lotResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/lots/{id} [get]
func (h *LotHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	entry, err := h.catalog.GetLot(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListLotReviews(ctx, entry.ID)
	if err != nil {
		return err
	}

	var mine *domain.Review
	if a := actor(c); a != nil {
		mine, err = h.reviews.GetMyReview(ctx, a, entry.ID)
		if err != nil && !errors.Is(err, domain.ErrReviewNotFound) {
			return err
		}
	}

	return c.JSON(http.StatusOK, lotResponse{Success: true, Lot: entry, Reviews: reviews, MyReview: mine})
}
