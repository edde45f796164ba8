package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Submit creates or updates the caller's review of a lot.
//
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.SubmitReviewInput  true  "Review"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/reviews [post]
func (h *ReviewHandler) Submit(c echo.Context) error {
	var in ports.SubmitReviewInput
	if err := c.Bind(&in); err != nil {
		return bindError(err)
	}
	if err := h.reviews.SubmitReview(c.Request().Context(), actor(c), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}
