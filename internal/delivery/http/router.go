package http

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/delivery/http/controllers"
	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/delivery/http/web"
	"devevent/internal/domain"
)

// Routes groups everything the router dispatches to.
type Routes struct {
	Events   *controllers.EventController
	Bookings *controllers.BookingController
	Auth     *controllers.AuthController
	Pages    *web.Pages
	Verifier domain.TokenVerifier
	Logger   *slog.Logger
	// Uploads serves the local image store; nil when images live elsewhere.
	Uploads http.Handler
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(rt.Verifier, rt.Logger)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		h.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API Routes
	mux.HandleFunc("POST /api/admin/login", rt.Auth.Login)
	mux.HandleFunc("POST /api/admin/logout", rt.Auth.Logout)
	mux.HandleFunc("GET /api/events", rt.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{slug}", rt.Events.GetEvent)
	mux.HandleFunc("POST /api/events", admin(rt.Events.CreateEvent))
	mux.HandleFunc("DELETE /api/events/{slug}", admin(rt.Events.DeleteEvent))
	mux.HandleFunc("POST /api/bookings", rt.Bookings.CreateBooking)

	// Pages
	mux.HandleFunc("GET /", rt.Pages.Home)
	mux.HandleFunc("GET /events/{slug}", rt.Pages.EventDetail)
	mux.HandleFunc("POST /events/{slug}/book", rt.Pages.BookEvent)
	mux.HandleFunc("GET /admin/login", rt.Pages.LoginForm)
	mux.HandleFunc("POST /admin/login", rt.Pages.Login)
	mux.HandleFunc("POST /admin/logout", rt.Pages.Logout)
	mux.HandleFunc("GET /admin", rt.Pages.Dashboard)
	mux.HandleFunc("GET /admin/events/{slug}/delete", rt.Pages.ConfirmDelete)
	mux.HandleFunc("POST /admin/events/{slug}/delete", rt.Pages.DeleteEvent)
	mux.HandleFunc("GET /admin/create-event", rt.Pages.CreateEventForm)
	mux.HandleFunc("POST /admin/create-event", rt.Pages.CreateEvent)

	if rt.Uploads != nil {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", rt.Uploads))
	}

	// Swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}

// Handler wraps the router with the middleware stack. The admin gate runs
// innermost so every /admin request is checked before any page handler.
func Handler(mux http.Handler, verifier domain.TokenVerifier, logger *slog.Logger, allowedOrigins []string) http.Handler {
	var handler http.Handler = middleware.AdminGate(verifier, mux)
	handler = middleware.CORS(allowedOrigins, handler)
	handler = chimw.Recoverer(handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = chimw.RealIP(handler)
	handler = chimw.RequestID(handler)
	return handler
}
