package controllers

import (
	"context"
	"net/http"

	"github.com/kiarashop/storefront/api/responses"
	"github.com/kiarashop/storefront/api/validators"
	"github.com/kiarashop/storefront/internal/session"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/logger"
)

// AuthService is the sign-in surface the controllers need.
type AuthService interface {
	Login(ctx context.Context, email, password string) (session.Identity, error)
	Register(ctx context.Context, name, email, password string) (session.Identity, error)
	Logout(ctx context.Context) error
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type identityView struct {
	UserID int64  `json:"userId,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Guest  bool   `json:"guest"`
}

func viewOfIdentity(ident session.Identity) identityView {
	return identityView{
		UserID: ident.UserID,
		Name:   ident.Name,
		Email:  ident.Email,
		Role:   ident.Role.String(),
		Guest:  ident.IsGuest(),
	}
}

// Login signs a customer in and switches the cart partition.
func Login(svc AuthService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ident, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOfIdentity(ident))
	}
}

// Register creates an account and signs it in.
func Register(svc AuthService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ident, err := svc.Register(r.Context(), payload.Name, payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, viewOfIdentity(ident))
	}
}

// Logout reverts to the guest identity.
func Logout(svc AuthService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		if err := svc.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOfIdentity(session.Identity{}))
	}
}

// Me reports the active identity.
func Me(sess *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, viewOfIdentity(sess.Current()))
	}
}
