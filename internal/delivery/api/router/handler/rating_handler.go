package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storerating/internal/delivery/api/middleware"
	"storerating/internal/delivery/api/response"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/errors"
	"storerating/internal/usecase"
)

// RatingHandler serves rating submission and store rating reads.
type RatingHandler struct {
	uc usecase.RatingUsecase
}

func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

// submitRatingRequest accepts the score as a JSON number or string; older
// clients send it as "rating".
type submitRatingRequest struct {
	StoreID string `json:"storeId" validate:"required,uuid"`
	Score   any    `json:"score"`
	Rating  any    `json:"rating"`
}

func (r *submitRatingRequest) rawScore() string {
	v := r.Score
	if v == nil {
		v = r.Rating
	}

	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

func (h *RatingHandler) SubmitRating(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid rating input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rating, err := h.uc.Submit(c.Request().Context(), &usecase.SubmitRatingInput{
		UserID:   identity.AccountID,
		StoreID:  uuid.MustParse(req.StoreID),
		RawScore: req.rawScore(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rating, "Rating submitted successfully")
}

func (h *RatingHandler) StoreAverage(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrStoreNotFound
	}

	avg, err := h.uc.AverageFor(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, avg)
}

func (h *RatingHandler) MyStoreRatings(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.OwnerStoreSummary(c.Request().Context(), identity.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary)
}

func (h *RatingHandler) MyStoreQRCode(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	png, err := h.uc.OwnerStoreQRCode(c.Request().Context(), identity.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set("Cache-Control", "no-store")

	return c.Blob(http.StatusOK, "image/png", png)
}
