package controllers

import (
	"context"
	"net/http"

	"github.com/kiarashop/storefront/api/responses"
	"github.com/kiarashop/storefront/api/validators"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/logger"
)

// ReviewService posts product reviews.
type ReviewService interface {
	Submit(ctx context.Context, productID int64, rating int, comment string) error
}

type submitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// SubmitReview posts a review for a product.
func SubmitReview(svc ReviewService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload submitReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Submit(r.Context(), id, payload.Rating, payload.Comment); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "submitted"})
	}
}
