package controllers

import (
	"net/http"

	"github.com/kiarashop/storefront/api/responses"
)

// Healthz reports liveness of the local surface.
func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
