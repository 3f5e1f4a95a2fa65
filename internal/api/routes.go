package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
		r.Get("/dashboard", s.handleDashboard)

		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/courses", s.handleCourses)
		r.Get("/activity", s.handleActivity)
		r.Post("/xp", s.handleAwardXP)

		r.Get("/skills/{skill}", s.handleSkillStatus)
		r.Post("/skills/{skill}/modules/{id}", s.handleCompleteModule)

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/", s.handleQuizView)
			r.Post("/start", s.handleQuizStart)
			r.Post("/answer", s.handleQuizAnswer)
			r.Post("/next", s.handleQuizNext)
			r.Post("/exit", s.handleQuizExit)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.handleGames)
			r.Post("/math/round", s.handleMathRound)
			r.Post("/math/select", s.handleMathSelect)
			r.Post("/word/round", s.handleWordRound)
			r.Post("/word/guess", s.handleWordGuess)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", s.handleAdminUsers)
			r.Post("/courses", s.handleAdminAddCourse)
			r.Delete("/users/{id}", s.handleAdminRemoveUser)
			r.Put("/users/{id}/xp", s.handleAdminSetXP)
		})
	})
	return r
}
