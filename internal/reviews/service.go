package reviews

import (
	"context"
	"strings"

	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/backend"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
)

// Submitter is the slice of the backend client the review service needs.
type Submitter interface {
	SubmitReview(ctx context.Context, productID int64, review backend.Review) error
}

// Service posts product reviews for signed-in customers.
type Service struct {
	submitter Submitter
	session   *session.Store
}

func NewService(submitter Submitter, sess *session.Store) *Service {
	return &Service{submitter: submitter, session: sess}
}

// Submit posts a review. Rating is a 1 to 5 star value; the comment is
// optional.
func (s *Service) Submit(ctx context.Context, productID int64, rating int, comment string) error {
	if s.session.Current().IsGuest() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to review products")
	}
	if rating < 1 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return s.submitter.SubmitReview(ctx, productID, backend.Review{
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	})
}
