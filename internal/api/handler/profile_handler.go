package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get returns the caller's nickname and reviews.
//
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	view, err := h.profiles.GetProfile(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Success: true, ProfileView: *view})
}

// Update sets the caller's nickname. user_id defaults to the caller.
//
// @Summary      Update my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.UpdateProfileInput  true  "Profile"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var in ports.UpdateProfileInput
	if err := c.Bind(&in); err != nil {
		return bindError(err)
	}
	a := actor(c)
	if in.UserID == "" && a != nil {
		in.UserID = a.ID
	}
	if err := h.profiles.UpdateProfile(c.Request().Context(), a, in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}
