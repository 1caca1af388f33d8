package orders

import (
	"context"

	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/enums"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
)

// Reader is the slice of the backend client the history service needs.
type Reader interface {
	GetOrder(ctx context.Context, id int64) (*backend.Order, error)
	ListMyOrders(ctx context.Context) ([]backend.Order, error)
	ListAllOrders(ctx context.Context) ([]backend.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status enums.OrderStatus) (*backend.Order, error)
}

// Service reads order history and drives the admin status board. Admin checks
// happen here so controllers stay thin; the backend enforces them again.
type Service struct {
	reader  Reader
	session *session.Store
}

func NewService(reader Reader, sess *session.Store) *Service {
	return &Service{reader: reader, session: sess}
}

// Get fetches one order by id.
func (s *Service) Get(ctx context.Context, id int64) (*backend.Order, error) {
	return s.reader.GetOrder(ctx, id)
}

// History lists the signed-in customer's orders.
func (s *Service) History(ctx context.Context) ([]backend.Order, error) {
	if s.session.Current().IsGuest() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to see your orders")
	}
	return s.reader.ListMyOrders(ctx)
}

// AdminList lists every order in the store.
func (s *Service) AdminList(ctx context.Context) ([]backend.Order, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.reader.ListAllOrders(ctx)
}

// AdminSetStatus moves an order to the given status. Terminal orders do not
// move again.
func (s *Service) AdminSetStatus(ctx context.Context, id int64, status enums.OrderStatus) (*backend.Order, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	current, err := s.reader.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			"order is already "+current.Status.String())
	}
	return s.reader.UpdateOrderStatus(ctx, id, status)
}

func (s *Service) requireAdmin() error {
	ident := s.session.Current()
	if ident.IsGuest() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in first")
	}
	if !ident.Role.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	return nil
}
