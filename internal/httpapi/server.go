package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cardiod/internal/predictor"
	"cardiod/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	PredictClinical(ctx context.Context, d types.ClinicalData) (types.MLPResponse, error)
	PredictECG(ctx context.Context, img []byte) (types.ECGResponse, error)
	PredictCombined(ctx context.Context, d types.ClinicalData, img []byte) (types.CombinedResponse, error)
	Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error)
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the router with every endpoint and middleware.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	h := &handlers{svc: svc}
	r.Route("/api", func(r chi.Router) {
		r.Post("/predict/mlp", h.predictMLP)
		r.Post("/predict/ecg", h.predictECG)
		r.Post("/predict/combined", h.predictCombined)
		r.Get("/predictions", h.recent)
	})

	r.Get("/status", h.status)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

// serve runs one prediction: it joins contexts, maps errors, logs and
// encodes the response.
func (h *handlers) serve(w http.ResponseWriter, r *http.Request, endpoint string, run func(ctx context.Context) (any, error)) {
	start := time.Now()
	lvl := requestLogLevel(r)
	ctx, cancel := predictContext(r)
	defer cancel()

	resp, err := run(ctx)
	if err != nil {
		// Client went away or the server is shutting down; nobody to answer.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		if reason, ok := rejectionReason(err); ok {
			IncrementRejected(endpoint, reason)
		}
		e := mapError(endpoint, err)
		writeErrorResponse(w, e)
		logPredict(r, lvl, endpoint, e.Code, start, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	logPredict(r, lvl, endpoint, http.StatusOK, start, nil)
}

// predictMLP godoc
//
//	@Summary	Classify clinical measurements
//	@Tags		predict
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		types.ClinicalData	true	"Clinical measurements"
//	@Success	200		{object}	types.MLPResponse
//	@Failure	415		{object}	types.ErrorResponse
//	@Failure	422		{object}	types.ErrorResponse
//	@Failure	503		{object}	types.ErrorResponse
//	@Failure	500		{object}	types.ErrorResponse
//	@Router		/api/predict/mlp [post]
func (h *handlers) predictMLP(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		IncrementRejected(predictor.EndpointMLP, "media_type")
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	h.serve(w, r, predictor.EndpointMLP, func(ctx context.Context) (any, error) {
		d, err := decodeClinical(r.Body, "body")
		if err != nil {
			return nil, err
		}
		return h.svc.PredictClinical(ctx, d)
	})
}

// predictECG godoc
//
//	@Summary	Classify an ECG image
//	@Tags		predict
//	@Accept		mpfd
//	@Produce	json
//	@Param		ecg_image	formData	file	true	"ECG image (PNG, JPEG, GIF, BMP, TIFF or WebP)"
//	@Success	200			{object}	types.ECGResponse
//	@Failure	413			{object}	types.ErrorResponse
//	@Failure	422			{object}	types.ErrorResponse
//	@Failure	503			{object}	types.ErrorResponse
//	@Failure	500			{object}	types.ErrorResponse
//	@Router		/api/predict/ecg [post]
func (h *handlers) predictECG(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, predictor.EndpointECG, func(ctx context.Context) (any, error) {
		if err := parseUpload(w, r); err != nil {
			return nil, err
		}
		defer r.MultipartForm.RemoveAll()
		img, err := readImage(r)
		if err != nil {
			return nil, err
		}
		return h.svc.PredictECG(ctx, img)
	})
}

// predictCombined godoc
//
//	@Summary	Hybrid verdict from clinical data and an ECG image
//	@Tags		predict
//	@Accept		mpfd
//	@Produce	json
//	@Param		clinical_data	formData	string	true	"ClinicalData as a JSON string"
//	@Param		ecg_image		formData	file	true	"ECG image"
//	@Success	200				{object}	types.CombinedResponse
//	@Failure	413				{object}	types.ErrorResponse
//	@Failure	422				{object}	types.ErrorResponse
//	@Failure	503				{object}	types.ErrorResponse
//	@Failure	500				{object}	types.ErrorResponse
//	@Router		/api/predict/combined [post]
func (h *handlers) predictCombined(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, predictor.EndpointCombined, func(ctx context.Context) (any, error) {
		if err := parseUpload(w, r); err != nil {
			return nil, err
		}
		defer r.MultipartForm.RemoveAll()
		d, err := readClinicalField(r)
		if err != nil {
			return nil, err
		}
		img, err := readImage(r)
		if err != nil {
			return nil, err
		}
		return h.svc.PredictCombined(ctx, d, img)
	})
}

// recent godoc
//
//	@Summary	Recent predictions
//	@Tags		history
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum entries (default 50)"
//	@Success	200		{object}	types.HistoryResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/api/predictions [get]
func (h *handlers) recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	entries, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		if predictor.IsHistoryDisabled(err) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(types.HistoryResponse{Predictions: entries}); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// status godoc
//
//	@Summary	Service status
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	types.StatusResponse
//	@Router		/status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.svc.Status()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
