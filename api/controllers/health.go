package controllers

import (
	"net/http"

	"github.com/ksemenov/catalog-backend/api/responses"
	"github.com/ksemenov/catalog-backend/pkg/db"
	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"
	"github.com/ksemenov/catalog-backend/pkg/logger"
)

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not wired"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable").
				WithDetails(map[string]string{"dependency": "database"}))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
