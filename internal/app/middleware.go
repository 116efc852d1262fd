package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/herbertjm76/bare-resource-horizon/internal/config"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Company-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			companyIdHeader := req.Header.Get("X-Company-Id")
			ctx := req.Context()

			if companyIdHeader != "" {
				c, err := deps.CompanyService.GetByUid(ctx, companyIdHeader)
				if err != nil {
					if errors.Is(err, company.ErrCompanyNotFound) {
						log.Debugf("company not found: %s", companyIdHeader)
						http.Error(w, "company not found", http.StatusForbidden)
						return
					} else {
						log.Errorf("failed to get company: %v", err)
						http.Error(w, err.Error(), http.StatusBadRequest)
						return
					}
				} else {
					log.Debugf("company found: %s", c.Uid)
					ctx = company.WithCompany(ctx, c)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
