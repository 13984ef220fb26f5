package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ksemenov/catalog-backend/api/controllers"
	"github.com/ksemenov/catalog-backend/api/middleware"
	"github.com/ksemenov/catalog-backend/internal/catalog"
	"github.com/ksemenov/catalog-backend/internal/pictures"
	"github.com/ksemenov/catalog-backend/pkg/config"
	"github.com/ksemenov/catalog-backend/pkg/db"
	"github.com/ksemenov/catalog-backend/pkg/logger"
	"github.com/ksemenov/catalog-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	catalogService catalog.Service,
	picturesService pictures.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(catalogService, logg))
		r.Post("/", controllers.CreateProduct(catalogService, logg))
		r.Get("/{id}", controllers.GetProduct(catalogService, logg))
		r.Delete("/{id}", controllers.DeleteProduct(catalogService, logg))

		r.Patch("/picture/update/{id}", controllers.UploadPicture(picturesService, cfg.Media, logg))
		r.Patch("/picture/delete/{id}", controllers.DeletePicture(picturesService, logg))
	})

	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Static.Root)))
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	return r
}
