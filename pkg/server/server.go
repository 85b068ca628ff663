package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/report"
	"github.com/orgpulse/orgpulse/pkg/server/middleware"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Server carries the router, database handle and the store
// implementations the endpoint handlers depend on.
type Server struct {
	Router   *mux.Router
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Reporter *report.Reporter
	Session  *middleware.SessionAuthenticator

	Users         store.UsersStore
	Companies     store.CompaniesStore
	Departments   store.DepartmentsStore
	Demographics  store.DemographicsStore
	Surveys       store.SurveysStore
	Responses     store.ResponsesStore
	Microclimates store.MicroclimatesStore
	Dashboard     store.DashboardStore
	Health        store.HealthStore

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
	sessionKey []byte,
	host string,
	port string,
) *Server {
	var reporter *report.Reporter
	if cfg.ErrorReportEndpoint != "" {
		reporter = report.NewReporter(cfg.ErrorReportEndpoint, logger)
	}

	router := mux.NewRouter().UseEncodedPath()
	handler := middleware.Recovery(logger, reporter)(corsHandler(cfg)(router))
	srv := &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, handler),
		Addr:         host + ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:   router,
		DB:       db,
		Config:   cfg,
		Logger:   logger,
		Reporter: reporter,
		Session:  middleware.NewSessionAuthenticator(sessionKey, cfg.SessionTTL()),
		srv:      srv,
	}
}

func corsHandler(cfg *config.Config) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
