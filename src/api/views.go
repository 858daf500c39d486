package api

import (
	"net/http"
	"time"

	"tracker/src/api/controllers"
	"tracker/src/api/handlers"
	"tracker/src/clients/coingecko"
	"tracker/src/config"
	"tracker/src/database"
	"tracker/src/repositories"
	"tracker/src/services"
	"tracker/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Logger  *logrus.Logger
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	userRepo := repositories.NewUserRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)

	coinGeckoClient := coingecko.NewClient(cfg)
	priceService := services.NewPriceService(coinGeckoClient)
	valuationService := services.NewValuationService(transactionRepo, priceService)
	authService := services.NewAuthService(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenLifetimeHours)*time.Hour)

	ctrls := controllers.NewControllers(userRepo, portfolioRepo, transactionRepo, authService, valuationService)

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(ctrls, authService),
		Logger:  logger,
	}
	server.InitRoutes()
	return server, nil
}

// requestLogger injects the service logger into every request context and
// logs the request line once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := utils.WithLogger(r.Context(), s.Logger)
		next.ServeHTTP(w, r.WithContext(ctx))
		s.Logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(s.requestLogger)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", s.Handler.Register)
		r.Post("/login", s.Handler.Login)
	})

	// Everything below requires a verified token
	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.Handler.Auth.TokenAuth()))
		r.Use(jwtauth.Authenticator)

		r.Route("/api/v1/users", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllUsers)
			r.Get("/me", s.Handler.GetMe)
			r.Get("/{id}", s.Handler.GetUserByID)
			r.Patch("/{id}", s.Handler.UpdateUserByID)
			r.Delete("/{id}", s.Handler.DeleteUserByID)
		})

		r.Route("/api/v1/portfolios", func(r chi.Router) {
			r.Post("/", s.Handler.CreatePortfolio)
			r.Get("/", s.Handler.GetUserPortfolios)
			r.Get("/admin", s.Handler.GetAllPortfolios)
			r.Get("/{id}", s.Handler.GetPortfolioByID)
			r.Patch("/{id}", s.Handler.UpdatePortfolioByID)
			r.Delete("/{id}", s.Handler.DeletePortfolioByID)
		})

		r.Route("/api/v1/transactions", func(r chi.Router) {
			r.Post("/", s.Handler.CreateTransaction)
			r.Get("/", s.Handler.GetUserTransactions)
			r.Get("/admin", s.Handler.GetAllTransactions)
			r.Get("/{id}", s.Handler.GetTransactionByID)
			r.Patch("/{id}", s.Handler.UpdateTransactionByID)
			r.Delete("/{id}", s.Handler.DeleteTransactionByID)
			r.Delete("/{id}/hard", s.Handler.HardDeleteTransactionByID)
		})
	})
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	port := cfg.Service.Port
	if port == "" {
		port = "8000"
	}
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      server,
	}
}
