package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/places-cli/internal/resilience"
	"github.com/sells-group/places-cli/pkg/geodesy"
	"github.com/sells-group/places-cli/pkg/google"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve place and geocoding lookups over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := resolvePort(servePort, cfg.Server.Port)
		cfg.Server.Port = port

		env, err := initClient(ctx, cfg, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		return startServer(ctx, buildRouter(env.Client, env.Breakers), port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort prefers the flag value over the configured port.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

// startServer serves h on port until ctx is done.
func startServer(ctx context.Context, h http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

// buildRouter wires the read-only lookup endpoints around client. breakers
// may be nil.
func buildRouter(client *google.Client, breakers *resilience.HostBreakers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", handleHealth(breakers))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/places/nearby", handleNearby(client))
		r.Get("/places/search", handleSearch(client))
		r.Get("/geocode", handleGeocode(client))
		r.Get("/reverse", handleReverse(client))
		r.Get("/distance", handleDistance)
	})

	return r
}

// healthResponse reports the server as degraded while any upstream circuit
// is open.
type healthResponse struct {
	Status   string            `json:"status"`
	Circuits map[string]string `json:"circuits"`
}

func handleHealth(breakers *resilience.HostBreakers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Circuits: map[string]string{}}
		if breakers != nil {
			for host, state := range breakers.States() {
				resp.Circuits[host] = state.String()
				if state == resilience.CircuitOpen {
					resp.Status = "degraded"
				}
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func handleNearby(client *google.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		at, err := coordinateParam(q.Get("lat"), q.Get("lng"))
		if err != nil {
			writeError(w, err)
			return
		}
		radius, err := optionalInt("radius", q.Get("radius"))
		if err != nil {
			writeError(w, err)
			return
		}

		resp, err := client.SearchNearby(r.Context(), google.NearbyQuery{
			Location: at,
			Radius:   radius,
			Type:     google.PlaceType(q.Get("type")),
			Keyword:  q.Get("keyword"),
			RankBy:   google.RankBy(q.Get("rankby")),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleSearch(client *google.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if query == "" {
			writeError(w, badRequest("query is required"))
			return
		}
		resp, err := client.FindBusiness(r.Context(), google.BusinessQuery{Query: query})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleGeocode(client *google.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get("address")
		if address == "" {
			writeError(w, badRequest("address is required"))
			return
		}
		resp, err := client.SearchAddress(r.Context(), address)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleReverse(client *google.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		at, err := coordinateParam(q.Get("lat"), q.Get("lng"))
		if err != nil {
			writeError(w, err)
			return
		}
		resp, err := client.ReverseGeocode(r.Context(), at)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleDistance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := geodesy.ParseCoordinate(q.Get("from"))
	if err != nil {
		writeError(w, badRequest("from must be lat,lng"))
		return
	}
	to, err := geodesy.ParseCoordinate(q.Get("to"))
	if err != nil {
		writeError(w, badRequest("to must be lat,lng"))
		return
	}
	unit, err := geodesy.ParseUnit(q.Get("unit"))
	if err != nil {
		writeError(w, badRequest(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, measure(from, to, unit))
}

// paramError is a malformed request parameter.
type paramError struct {
	msg string
}

func (e *paramError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &paramError{msg: msg}
}

func coordinateParam(lat, lng string) (geodesy.Coordinate, error) {
	if lat == "" || lng == "" {
		return geodesy.Coordinate{}, badRequest("lat and lng are required")
	}
	c, err := geodesy.ParseCoordinate(lat + "," + lng)
	if err != nil {
		return geodesy.Coordinate{}, badRequest("lat and lng must be numbers")
	}
	return c, nil
}

func optionalInt(name, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest(name + " must be an integer")
	}
	return n, nil
}

// statusFor maps lookup failures to HTTP statuses: caller mistakes and
// rejected requests are 400, upstream HTTP failures 502, the rest 500.
func statusFor(err error) int {
	var (
		pe *paramError
		re *google.RequestError
		te *google.TransportError
	)
	switch {
	case errors.As(err, &pe), errors.As(err, &re),
		errors.Is(err, google.ErrRankByDistanceRadius),
		errors.Is(err, google.ErrRankByDistanceFilter):
		return http.StatusBadRequest
	case errors.As(err, &te):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("lookup failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
