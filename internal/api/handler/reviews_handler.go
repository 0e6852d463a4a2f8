package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

type ReviewsHandler struct {
	reviews ports.ReviewsAPI
}

func NewReviewsHandler(reviews ports.ReviewsAPI) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Add handles POST /reviews/:vetId.
//
// @Summary      Review a vet
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        vetId  path      string         true  "Vet id"
// @Param        body   body      reviewRequest  true  "Review"
// @Success      201    {object}  domain.Review
// @Failure      422    {object}  errorResponse
// @Router       /reviews/{vetId} [post]
func (h *ReviewsHandler) Add(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	review, err := h.reviews.Add(c.Request().Context(), c.Param("vetId"), ports.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// ListForVet handles GET /reviews/:vetId — public.
//
// @Summary      List a vet's reviews
// @Tags         reviews
// @Produce      json
// @Param        vetId  path  string  true  "Vet id"
// @Success      200  {array}  domain.Review
// @Router       /reviews/{vetId} [get]
func (h *ReviewsHandler) ListForVet(c echo.Context) error {
	reviews, err := h.reviews.ListForVet(c.Request().Context(), c.Param("vetId"))
	if err != nil {
		return err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}
