package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/terrascope/invest-cli/internal/dataset"
	"github.com/terrascope/invest-cli/internal/export"
	"github.com/terrascope/invest-cli/internal/geo"
	"github.com/terrascope/invest-cli/internal/scoring"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scored dataset over a read-only HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider, err := openDataset()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(provider),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the API router. All scoring happens per request; the
// dataset itself is immutable, so no locking is needed.
func newRouter(provider *dataset.Provider) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))
	r.Use(rateLimit(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeAPI(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/metadata", func(w http.ResponseWriter, req *http.Request) {
		writeAPI(w, http.StatusOK, map[string]any{
			"metadata":     provider.Metadata(),
			"stats_global": provider.GlobalStats(),
		})
	})

	r.Get("/api/villes", func(w http.ResponseWriter, req *http.Request) {
		limit := queryInt(req, "limit", 0)
		writeAPI(w, http.StatusOK, scoring.TopCities(provider.Cities(), limit))
	})

	r.Get("/api/villes/{code}", func(w http.ResponseWriter, req *http.Request) {
		city := provider.Resolve(chi.URLParam(req, "code"))
		if city == nil {
			writeAPIError(w, http.StatusNotFound, "ville inconnue")
			return
		}
		score := scoring.CityScoreWithRank(city, provider.Cities())
		writeAPI(w, http.StatusOK, scoring.RankedCity{City: city, Score: score})
	})

	r.Get("/api/villes/{code}/quartiers", func(w http.ResponseWriter, req *http.Request) {
		city := provider.Resolve(chi.URLParam(req, "code"))
		if city == nil {
			writeAPIError(w, http.StatusNotFound, "ville inconnue")
			return
		}
		limit := queryInt(req, "limit", 0)
		cityScore := scoring.ScoreCity(city)
		ranked := scoring.TopDistricts(city.Districts, limit, cityScore.Total)

		if req.URL.Query().Get("format") == "geojson" {
			writeAPI(w, http.StatusOK, geo.CityDistrictCollection(city, ranked))
			return
		}
		writeAPI(w, http.StatusOK, ranked)
	})

	r.Get("/api/villes/{code}/quartiers-a-surveiller", func(w http.ResponseWriter, req *http.Request) {
		city := provider.Resolve(chi.URLParam(req, "code"))
		if city == nil {
			writeAPIError(w, http.StatusNotFound, "ville inconnue")
			return
		}
		limit := queryInt(req, "limit", cfg.Export.WatchLimit)
		cityScore := scoring.ScoreCity(city)
		writeAPI(w, http.StatusOK, scoring.DistrictsToWatch(city.Districts, limit, cityScore.Total))
	})

	r.Get("/api/villes/{code}/rapport", func(w http.ResponseWriter, req *http.Request) {
		city := provider.Resolve(chi.URLParam(req, "code"))
		if city == nil {
			writeAPIError(w, http.StatusNotFound, "ville inconnue")
			return
		}
		score := scoring.CityScoreWithRank(city, provider.Cities())
		report := export.BuildCityReport(scoring.RankedCity{City: city, Score: score}, cfg.Export.WatchLimit)
		writeAPI(w, http.StatusOK, report)
	})

	r.Get("/api/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query().Get("q")
		if q == "" {
			writeAPIError(w, http.StatusBadRequest, "paramètre q requis")
			return
		}
		limit := queryInt(req, "limit", 20)
		writeAPI(w, http.StatusOK, provider.Search(q, limit))
	})

	return r
}

// rateLimit applies a process-wide token bucket across all clients.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeAPIError(w, http.StatusTooManyRequests, "trop de requêtes")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func writeAPI(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeAPIError(w http.ResponseWriter, status int, msg string) {
	writeAPI(w, status, map[string]string{"erreur": msg})
}

func queryInt(req *http.Request, key string, fallback int) int {
	raw := req.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
