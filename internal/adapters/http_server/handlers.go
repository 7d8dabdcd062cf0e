package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/observability"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/app"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
)

type Handlers struct {
	A *app.AnalysisService
	Q *app.QueryService
}

type analyzeRequest struct {
	ProductID  string `json:"product_id"`
	ReviewText string `json:"review_text"`
}

type analyzeResponse struct {
	ProductID      string  `json:"product_id"`
	Score          float64 `json:"sentiment_score"`
	Magnitude      float64 `json:"sentiment_magnitude"`
	Classification string  `json:"sentiment_classification"`
	Message        string  `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/analyze", h.analyze)
	s.mux.Get("/v1/summary", h.summary)
	s.mux.Get("/v1/reviews", h.listReviews)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	res, err := h.A.Analyze(r.Context(), app.AnalyzeRequest{
		ProductID:  req.ProductID,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyReviewText):
			writeError(w, http.StatusBadRequest, "review_text is required")
		default:
			// scoring, store, or anything unexpected: surface as 500 with the
			// failure's text, matching the flat error contract
			log.Error().Err(err).Str("product_id", req.ProductID).Msg("analyze failed")
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	observability.ObserveClassification(res.Classification)
	writeJSON(w, http.StatusOK, analyzeResponse{
		ProductID:      res.ProductID,
		Score:          res.Score,
		Magnitude:      res.Magnitude,
		Classification: res.Classification,
		Message:        fmt.Sprintf("Review processed successfully. Sentiment: %s", res.Classification),
	})
}

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	sv, err := h.Q.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("summary query failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	rs, err := h.Q.ListReviews(r.Context(), productID, limit)
	if err != nil {
		log.Error().Err(err).Str("product_id", productID).Msg("list reviews failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type reviewItem struct {
		ProductID      string  `json:"product_id"`
		ReviewText     string  `json:"review_text"`
		Score          float64 `json:"sentiment_score"`
		Magnitude      float64 `json:"sentiment_magnitude"`
		Classification string  `json:"sentiment_classification"`
		ProcessedAt    string  `json:"processed_timestamp"`
	}
	items := make([]reviewItem, 0, len(rs))
	for _, rv := range rs {
		items = append(items, reviewItem{
			ProductID:      rv.ProductID,
			ReviewText:     rv.ReviewText,
			Score:          app.Round3(rv.Score),
			Magnitude:      app.Round3(rv.Magnitude),
			Classification: rv.Classification,
			ProcessedAt:    rv.ProcessedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, struct {
		Items []reviewItem `json:"items"`
	}{Items: items})
}
