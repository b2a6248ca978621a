package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter/v2"

	"github.com/codeGROOVE-dev/meetsync/pkg/catalog"
	"github.com/codeGROOVE-dev/meetsync/pkg/config"
	"github.com/codeGROOVE-dev/meetsync/pkg/meeting"
	"github.com/codeGROOVE-dev/meetsync/pkg/suitability"
	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

const (
	maxBodyBytes = 64 << 10
	cacheTTL     = time.Hour
)

type rateLimiter struct {
	requests map[string][]time.Time
	now      func() time.Time
	limit    int
	mu       sync.Mutex
}

func newRateLimiter(limit int) *rateLimiter {
	return &rateLimiter{
		requests: make(map[string][]time.Time),
		now:      time.Now,
		limit:    limit,
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-time.Minute)

	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[ip] = valid
		return false
	}

	rl.requests[ip] = append(valid, now)
	return true
}

type server struct {
	cache   *otter.Cache[string, []byte]
	catalog *catalog.Catalog
	limiter *rateLimiter
	logger  *slog.Logger
	now     func() time.Time
}

func newServer(logger *slog.Logger, cat *catalog.Catalog, limit int) *server {
	if limit <= 0 {
		limit = 60
	}
	return &server{
		cache: otter.Must(&otter.Options[string, []byte]{
			MaximumSize:      10_000,
			ExpiryCalculator: otter.ExpiryWriting[string, []byte](cacheTTL),
		}),
		catalog: cat,
		limiter: newRateLimiter(limit),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/score", s.handleScore)
	mux.HandleFunc("POST /api/v1/day", s.handleDay)
	mux.HandleFunc("GET /api/v1/catalog", s.handleCatalog)
	return s.wrap(mux)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *server) wrap(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		defer func() {
			if err := recover(); err != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]

				s.logger.Error("PANIC: Request handler crashed",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"client_ip", clientIP(r),
					"user_agent", r.Header.Get("User-Agent"),
					"stack", string(buf))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Cache-Control", "no-store")
		}

		if !s.limiter.allow(clientIP(r)) {
			s.logger.Error("Rate limit exceeded",
				"request_id", requestID,
				"client_ip", clientIP(r),
				"path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded", "RATE_LIMIT")
			return
		}

		handler.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Code: code})
}

// apiZone is a zone as sent by clients. Enabled defaults to true.
type apiZone struct {
	Enabled      *bool  `json:"enabled"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Timezone     string `json:"timezone"`
	IsMyTimezone bool   `json:"is_my_timezone"`
}

// buildZones converts client zones. Missing ids are numbered from 1,
// skipping any id the client supplied.
func buildZones(in []apiZone) []meeting.Zone {
	used := make(map[string]bool, len(in))
	for _, z := range in {
		used[z.ID] = true
	}

	next := 0
	zones := make([]meeting.Zone, 0, len(in))
	for _, z := range in {
		enabled := true
		if z.Enabled != nil {
			enabled = *z.Enabled
		}
		id := z.ID
		if id == "" {
			for {
				next++
				id = strconv.Itoa(next)
				if !used[id] {
					break
				}
			}
			used[id] = true
		}
		name := z.Name
		if name == "" {
			name = z.Timezone
		}
		zones = append(zones, meeting.Zone{
			ID:           id,
			Name:         name,
			Timezone:     z.Timezone,
			Enabled:      enabled,
			IsMyTimezone: z.IsMyTimezone,
		})
	}
	return zones
}

type apiRequest struct {
	Instant  *time.Time `json:"instant"`
	Timezone string     `json:"timezone"`
	Zones    []apiZone  `json:"zones"`
}

// resolved is a validated request.
type resolved struct {
	instant  time.Time
	location *time.Location
	zones    []meeting.Zone
	// cacheable is false when the instant was taken from the clock.
	cacheable bool
}

// resolve validates a request. A missing zones field means the default
// zones; an empty list is scored as no zones at all.
func (s *server) resolve(req *apiRequest) (*resolved, error) {
	zones := meeting.DefaultZones()
	if req.Zones != nil {
		zones = buildZones(req.Zones)
	}

	tzName := req.Timezone
	if tzName == "" {
		tzName = "UTC"
	}
	cfg := &config.Config{Timezone: tzName, Zones: zones}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := tzconvert.Load(tzName)
	if err != nil {
		return nil, err
	}

	r := &resolved{location: loc, zones: zones, cacheable: req.Instant != nil}
	if req.Instant != nil {
		r.instant = req.Instant.In(loc)
	} else {
		r.instant = s.now().In(loc)
	}
	return r, nil
}

// serveCached decodes the request, answers from cache when possible and
// otherwise calls compute and caches its JSON.
func (s *server) serveCached(w http.ResponseWriter, r *http.Request, compute func(*resolved) (any, error)) {
	start := time.Now()
	requestID := w.Header().Get("X-Request-ID")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.logger.Error("Failed to read request body", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request", "BAD_REQUEST")
		return
	}

	var req apiRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.logger.Error("Invalid request body", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request", "BAD_REQUEST")
		return
	}

	sum := sha256.Sum256(append([]byte(r.URL.Path+"\n"), body...))
	cacheKey := hex.EncodeToString(sum[:])
	if req.Instant != nil {
		if data, found := s.cache.GetIfPresent(cacheKey); found {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			if _, err := w.Write(data); err != nil {
				s.logger.Error("Failed to write cached response", "request_id", requestID, "error", err)
			}
			s.logger.Debug("Request completed", "request_id", requestID, "path", r.URL.Path, "cache", "hit",
				"duration_ms", time.Since(start).Milliseconds())
			return
		}
	}

	res, err := s.resolve(&req)
	if err != nil {
		s.logger.Info("Rejected request", "request_id", requestID, "path", r.URL.Path, "error", err)
		code := "INVALID_ZONES"
		if errors.Is(err, tzconvert.ErrUnknownTimezone) {
			code = "UNKNOWN_TIMEZONE"
		}
		writeError(w, http.StatusBadRequest, err.Error(), code)
		return
	}

	out, err := compute(res)
	if err != nil {
		s.logger.Error("Scoring failed", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, err.Error(), "SCORING_FAILED")
		return
	}

	data, err := json.Marshal(out)
	if err != nil {
		s.logger.Error("JSON encoding failed", "request_id", requestID, "error", err)
		http.Error(w, "Encoding failed", http.StatusInternalServerError)
		return
	}
	if res.cacheable {
		s.cache.Set(cacheKey, data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("Failed to write response", "request_id", requestID, "error", err)
		return
	}
	s.logger.Info("Request completed",
		"request_id", requestID,
		"path", r.URL.Path,
		"zones", len(res.zones),
		"cache", "miss",
		"duration_ms", time.Since(start).Milliseconds())
}

type scoreResponse struct {
	*meeting.Result

	Instant time.Time          `json:"instant"`
	Rating  suitability.Rating `json:"rating"`
}

func (s *server) handleScore(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, func(res *resolved) (any, error) {
		result, err := meeting.Score(res.instant, res.zones)
		if err != nil {
			return nil, err
		}
		return scoreResponse{Result: result, Instant: res.instant, Rating: result.Rating()}, nil
	})
}

type dayResponse struct {
	Date     string           `json:"date"`
	Timezone string           `json:"timezone"`
	Samples  []meeting.Sample `json:"samples"`
	Optimal  int              `json:"optimal"`
}

func (s *server) handleDay(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, func(res *resolved) (any, error) {
		samples, err := meeting.Sweep(res.instant, res.zones)
		if err != nil {
			return nil, err
		}
		return dayResponse{
			Date:     res.instant.Format(time.DateOnly),
			Timezone: res.location.String(),
			Samples:  samples,
			Optimal:  meeting.Best(samples),
		}, nil
	})
}

func (s *server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.catalog.Options()); err != nil {
		s.logger.Error("Failed to encode catalog",
			"request_id", w.Header().Get("X-Request-ID"),
			"error", err)
	}
}
