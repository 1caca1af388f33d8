package auth

import (
	"context"
	"strings"

	"github.com/kiarashop/storefront/internal/cart"
	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/enums"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/logger"
)

// Authenticator is the slice of the backend client the auth service needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.AuthResponse, error)
	Register(ctx context.Context, name, email, password, role string) (*backend.AuthResponse, error)
}

// Service signs customers in and out. Every identity change also switches the
// cart to the matching partition, so guest and per-user carts never mix.
type Service struct {
	client  Authenticator
	session *session.Store
	cart    *cart.Store
	logger  *logger.Logger
}

func NewService(client Authenticator, sess *session.Store, cartStore *cart.Store, logg *logger.Logger) *Service {
	return &Service{
		client:  client,
		session: sess,
		cart:    cartStore,
		logger:  logg,
	}
}

// Login authenticates and switches the session and cart to the user.
func (s *Service) Login(ctx context.Context, email, password string) (session.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Identity{}, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return session.Identity{}, err
	}
	return s.establish(ctx, resp)
}

// Register creates a customer account and signs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (session.Identity, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return session.Identity{}, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required")
	}

	resp, err := s.client.Register(ctx, name, email, password, enums.RoleCustomer.String())
	if err != nil {
		return session.Identity{}, err
	}
	return s.establish(ctx, resp)
}

// Logout reverts to the guest identity and the guest cart.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return err
	}
	s.cart.SwitchPartition(ctx, session.GuestPartition)
	return nil
}

func (s *Service) establish(ctx context.Context, resp *backend.AuthResponse) (session.Identity, error) {
	if err := s.session.Establish(ctx, *resp); err != nil {
		return session.Identity{}, err
	}
	ident := s.session.Current()
	s.cart.SwitchPartition(ctx, ident.PartitionKey())

	if s.logger != nil {
		s.logger.Info(s.logger.WithPartition(ctx, ident.PartitionKey()), "session established")
	}
	return ident, nil
}
