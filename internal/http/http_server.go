package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/gradeview-2025.net/internal/core/ports/primary"
	auth2 "gitlab.com/gradeview-2025.net/internal/core/services/auth"
	"gitlab.com/gradeview-2025.net/internal/core/services/filter"
	"gitlab.com/gradeview-2025.net/internal/core/services/review"
	"gitlab.com/gradeview-2025.net/internal/handlers"
	"gitlab.com/gradeview-2025.net/internal/handlers/auth"
	"gitlab.com/gradeview-2025.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	listService   filter.IListService
	reviewService review.IReviewService

	ggAuth    auth2.IAuthService
	localAuth auth2.IAuthService
}

func NewServiceProvider(
	listService filter.IListService,
	reviewService review.IReviewService,
	ggAuth auth2.IAuthService,
	localAuth auth2.IAuthService,
) *ServiceProvider {
	return &ServiceProvider{
		listService:   listService,
		reviewService: reviewService,
		ggAuth:        ggAuth,
		localAuth:     localAuth,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()

	auth.NewHandler().RegisterRoutes(r, &auth.ServiceDependencies{
		GGAuthService:    s.ServiceProvider.ggAuth,
		LocalAuthService: s.ServiceProvider.localAuth,
	})

	api := r.PathPrefix("/api").Subrouter()
	api.Use(handlers.New().JWTMiddleware)
	submissions.
		NewSubmissionHandler(s.ServiceProvider.listService, s.ServiceProvider.reviewService, s.logger).
		RegisterRoutes(api)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.srv = srv

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop() {
	if s.srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
