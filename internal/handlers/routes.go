package handlers

import "net/http"

// Router groups the API handlers for route registration
type Router struct {
	Middleware  *Middleware
	Auth        *AuthHandler
	Children    *ChildHandler
	Assessments *AssessmentHandler
	Progress    *ProgressHandler
	Dashboard   *DashboardHandler
	Health      *HealthHandler
}

// Routes registers every API route and wraps the mux with request logging
func (rt *Router) Routes() http.Handler {
	mux := http.NewServeMux()
	m := rt.Middleware

	// Public routes
	mux.HandleFunc("GET /health", rt.Health.Health)
	mux.HandleFunc("GET /api/scorer/health", rt.Health.ScorerHealth)
	mux.HandleFunc("POST /api/auth/register", m.RateLimit(rt.Auth.Register))
	mux.HandleFunc("POST /api/auth/login", m.RateLimit(rt.Auth.Login))

	// Child routes
	mux.HandleFunc("GET /api/children", m.RequireAuth(rt.Children.List))
	mux.HandleFunc("POST /api/children", m.RequireAuth(rt.Children.Create))
	mux.HandleFunc("GET /api/children/{id}/progress", m.RequireAuth(rt.Children.Progress))

	// Assessment routes
	mux.HandleFunc("POST /api/assessments/start", m.RequireAuth(rt.Assessments.Start))
	mux.HandleFunc("POST /api/assessments/submit", m.RequireAuth(rt.Assessments.Submit))
	mux.HandleFunc("GET /api/assessments/{id}", m.RequireAuth(rt.Assessments.Get))

	// Learning progress routes
	mux.HandleFunc("POST /api/progress/letters", m.RequireAuth(rt.Progress.Letters))
	mux.HandleFunc("POST /api/progress/spelling", m.RequireAuth(rt.Progress.Spelling))
	mux.HandleFunc("POST /api/progress/words", m.RequireAuth(rt.Progress.Words))

	mux.HandleFunc("GET /api/dashboard/summary", m.RequireAuth(rt.Dashboard.Summary))

	return Logging(mux)
}
