package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	auth "Ductwork/internal/auth"
	batch "Ductwork/internal/calc/batch"
	duct "Ductwork/internal/calc/duct"
	importer "Ductwork/internal/calc/importer"
	report "Ductwork/internal/calc/report"
	config "Ductwork/internal/config"
	repo "Ductwork/internal/repo"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewRouter registers the account and duct calculator routes. Calculator
// routes require a session cookie.
func NewRouter(cfg config.Config, users repo.Repository) http.Handler {
	authEnv := &auth.Env{JWTKey: cfg.TokenKey, Repo: users}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)
	secureApi.HandleFunc("/me", authEnv.Me).Methods("GET")

	ductH := &duct.Handler{Defaults: cfg.Defaults}
	batchH := &batch.Handler{Defaults: cfg.Defaults}
	importH := &importer.Handler{Defaults: cfg.Defaults}
	reportH := &report.Handler{Defaults: cfg.Defaults}

	tools := secureApi.PathPrefix("/tools/duct").Subrouter()
	tools.HandleFunc("/calc", ductH.Calc).Methods("POST")
	tools.HandleFunc("/batch", batchH.Calc).Methods("POST")
	tools.HandleFunc("/import", importH.Import).Methods("POST")
	tools.HandleFunc("/export", importH.Export).Methods("POST")
	tools.HandleFunc("/template", importH.Template).Methods("GET")
	tools.HandleFunc("/report", reportH.Generate).Methods("POST")

	return CORS(r)
}

// Run serves the API until ctx is cancelled, then drains connections.
func Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.RequireServer(); err != nil {
		return err
	}
	db, err := repo.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	users := repo.NewPostgresUserDB(db)
	if err := users.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating users table: %w", err)
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewRouter(cfg, users),
	}

	var wg sync.WaitGroup
	errc := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting server on %s", cfg.Addr)
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received")
	case err := <-errc:
		wg.Wait()
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}
	wg.Wait()
	log.Println("Server stopped")
	return nil
}
