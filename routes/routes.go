package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/winsonteo/GripRank-next-sub000/handlers"
	"github.com/winsonteo/GripRank-next-sub000/middleware"
	"github.com/winsonteo/GripRank-next-sub000/models"
)

// SetupRoutes mounts the full HTTP API on the given router.
//
// Reads are public so scoreboard clients can poll without a token.
// Writes require a judge token, and bracket regeneration is restricted
// to the chief judge.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	categoryHandler *handlers.CategoryHandler,
	athleteHandler *handlers.AthleteHandler,
	standingsHandler *handlers.StandingsHandler,
	bracketHandler *handlers.BracketHandler,
	matchHandler *handlers.MatchHandler,
	rankingHandler *handlers.RankingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	authenticate := middleware.Authenticate(jwtSecret)
	judgeOnly := middleware.Authorize(string(models.RoleJudge), string(models.RoleChief))
	chiefOnly := middleware.Authorize(string(models.RoleChief))

	router.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.List)
		r.Get("/{categoryID}", categoryHandler.GetByID)
		r.Get("/{categoryID}/athletes", athleteHandler.ListByCategory)
		r.Get("/{categoryID}/standings", standingsHandler.GetStandings)
		r.Get("/{categoryID}/bracket", bracketHandler.GetBracket)
		r.Get("/{categoryID}/ranking", rankingHandler.GetOverallRanking)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(judgeOnly)

			r.Post("/", categoryHandler.Create)
			r.Put("/{categoryID}", categoryHandler.Update)
			r.Delete("/{categoryID}", categoryHandler.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(chiefOnly)

			r.Post("/{categoryID}/bracket", bracketHandler.Regenerate)
		})
	})

	router.Route("/athletes", func(r chi.Router) {
		r.Get("/{athleteID}", athleteHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(judgeOnly)

			r.Post("/", athleteHandler.Create)
			r.Put("/{athleteID}", athleteHandler.Update)
			r.Delete("/{athleteID}", athleteHandler.Delete)
			r.Post("/{athleteID}/photo", athleteHandler.UploadPhoto)
			r.Put("/{athleteID}/qualifier", standingsHandler.SaveQualifierResult)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(judgeOnly)

			r.Put("/{matchID}/result", matchHandler.SaveResult)
		})
	})

	router.Get("/ws/{categoryID}", webSocketHandler.Subscribe)
}
