package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/deadbrock/avalia-o/app"
	"github.com/deadbrock/avalia-o/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middleware.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	root.Mount("/api", apiRouter(app))

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.TokenSecret)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	admin := middlewares.Admin(app.TokenSecret)

	api.Get("/responses", ListResponses(app))
	api.Post("/responses", SubmitResponse(app))
	api.With(admin).Delete("/responses", DeleteResponses(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(admin)

		r.Get("/stats", GetStats(app))
		r.Get("/recommendations", GetRecommendations(app))

		r.Get("/action-items", ListActionItems(app))
		r.Post("/action-items", CreateActionItem(app))
		r.Post("/action-items/bulk", CreateActionItemsBulk(app))
		r.Put(`/action-items/{id:^\d+$}/status`, UpdateActionItemStatus(app))
		r.Delete(`/action-items/{id:^\d+$}`, DeleteActionItem(app))

		r.Get("/export/csv", ExportCSV(app))
		r.Get("/export/pdf", ExportPDF(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
