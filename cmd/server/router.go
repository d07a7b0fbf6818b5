package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-decks/internal/api"
	apiMiddleware "github.com/phrazzld/scry-decks/internal/api/middleware"
	"github.com/phrazzld/scry-decks/internal/api/shared"
)

// setupRouter creates the router with every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	authHandler := api.NewAuthHandler(app.authService, app.logger)
	deckHandler := api.NewDeckHandler(app.deckService, app.studyService, app.params, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.reviewService, app.studyService, app.params, app.logger)
	conversationHandler := api.NewConversationHandler(app.tutorService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/health", app.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/decks", func(r chi.Router) {
				r.Get("/", deckHandler.ListDecks)
				r.Post("/", deckHandler.CreateDeck)
				r.Route("/{deckID}", func(r chi.Router) {
					r.Get("/", deckHandler.GetDeck)
					r.Put("/", deckHandler.RenameDeck)
					r.Delete("/", deckHandler.DeleteDeck)
					r.Get("/study", deckHandler.Study)
					r.Get("/cards", cardHandler.ListCards)
					r.Post("/cards", cardHandler.CreateCard)
					r.Get("/cards/due", cardHandler.DueCards)
				})
			})

			r.Route("/cards/{cardID}", func(r chi.Router) {
				r.Get("/", cardHandler.GetCard)
				r.Put("/", cardHandler.UpdateCard)
				r.Delete("/", cardHandler.DeleteCard)
				r.Post("/review", cardHandler.SubmitReview)
			})

			r.Get("/review", cardHandler.ReviewQueue)

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", conversationHandler.ListConversations)
				r.Post("/", conversationHandler.CreateConversation)
				r.Route("/{conversationID}", func(r chi.Router) {
					r.Get("/", conversationHandler.GetConversation)
					r.Delete("/", conversationHandler.DeleteConversation)
					r.Post("/messages", conversationHandler.SendMessage)
				})
			})
		})
	})

	return r
}

// health reports whether the database is reachable.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		app.logger.Error("health check failed", "error", err)
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
