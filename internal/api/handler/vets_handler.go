package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

// VetsHandler carries the vet search pages and the vet dashboard's profile
// management. Service tags travel inside the profile payload as plain names.
type VetsHandler struct {
	vets ports.VetsAPI
}

func NewVetsHandler(vets ports.VetsAPI) *VetsHandler {
	return &VetsHandler{vets: vets}
}

type vetProfileRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Bio      string   `json:"bio"`
	Services []string `json:"services"`
}

// List handles GET /vetprofile with optional free-text, city and service
// filters, all passed through to the backend.
//
// @Summary      Search vet profiles
// @Tags         vets
// @Produce      json
// @Param        q        query  string  false  "Free-text search"
// @Param        city     query  string  false  "City filter"
// @Param        service  query  string  false  "Service tag filter"
// @Success      200  {array}  domain.VetProfile
// @Router       /vetprofile [get]
func (h *VetsHandler) List(c echo.Context) error {
	vets, err := h.vets.List(c.Request().Context(), ports.VetFilter{
		Query:   c.QueryParam("q"),
		City:    c.QueryParam("city"),
		Service: c.QueryParam("service"),
	})
	if err != nil {
		return err
	}
	if vets == nil {
		vets = []domain.VetProfile{}
	}
	return c.JSON(http.StatusOK, vets)
}

// Get handles GET /vetprofile/:id.
//
// @Summary      Vet profile details
// @Tags         vets
// @Produce      json
// @Param        id  path  string  true  "Vet id"
// @Success      200  {object}  domain.VetProfile
// @Failure      404  {object}  errorResponse
// @Router       /vetprofile/{id} [get]
func (h *VetsHandler) Get(c echo.Context) error {
	vet, err := h.vets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vet)
}

// Create handles POST /vetprofile — first-time profile publication from the
// vet dashboard.
//
// @Summary      Create vet profile
// @Tags         vets
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      vetProfileRequest  true  "Profile"
// @Success      201   {object}  domain.VetProfile
// @Failure      422   {object}  errorResponse
// @Router       /vetprofile [post]
func (h *VetsHandler) Create(c echo.Context) error {
	profile, err := h.bindProfile(c)
	if err != nil {
		return err
	}

	created, err := h.vets.Create(c.Request().Context(), profile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /vetprofile/:id — whole-profile replace, service tags
// included.
//
// @Summary      Update vet profile
// @Tags         vets
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string             true  "Vet id"
// @Param        body  body      vetProfileRequest  true  "Profile"
// @Success      200   {object}  domain.VetProfile
// @Failure      422   {object}  errorResponse
// @Router       /vetprofile/{id} [put]
func (h *VetsHandler) Update(c echo.Context) error {
	profile, err := h.bindProfile(c)
	if err != nil {
		return err
	}

	updated, err := h.vets.Update(c.Request().Context(), c.Param("id"), profile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *VetsHandler) bindProfile(c echo.Context) (domain.VetProfile, error) {
	var req vetProfileRequest
	if err := c.Bind(&req); err != nil {
		return domain.VetProfile{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.VetProfile{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	return domain.VetProfile{
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
		Bio:      req.Bio,
		Services: dedupeTags(req.Services),
	}, nil
}

// dedupeTags drops duplicate service tags while preserving order, matching
// the dashboard's toggle behaviour.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
