package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/homematch-ph/listing-recommender/internal/domain"
	"github.com/homematch-ph/listing-recommender/internal/export"
	"github.com/homematch-ph/listing-recommender/internal/recommend"
)

// ListParams narrows and pages a listings query.
type ListParams struct {
	Limit      int
	Offset     int
	Location   string
	MinPrice   string
	MaxPrice   string
	Furnishing string
	Sort       string
}

// ListingsRepo abstracts the listing inventory. The SQLite-backed repo
// is the production implementation; tests use the in-memory one.
type ListingsRepo interface {
	List(ctx context.Context, p ListParams) ([]domain.Listing, int, error)
	Get(ctx context.Context, id string) (domain.Listing, bool, error)
	Create(ctx context.Context, l domain.Listing) (domain.Listing, error)
	Delete(ctx context.Context, id string) (bool, error)
	All(ctx context.Context) ([]domain.Listing, error)
}

type Server struct {
	Engine *recommend.Engine
	Repo   ListingsRepo
}

func NewServer(engine *recommend.Engine, repo ListingsRepo) *Server {
	return &Server{Engine: engine, Repo: repo}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/recommend", s.handleRecommend)
	mux.HandleFunc("/recommend/export", s.handleRecommendExport)
	mux.HandleFunc("/listings", s.handleListingsList)
	mux.HandleFunc("/listings/", s.handleListingsGetByID)
	mux.HandleFunc("/demo", s.handleDemo)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type RecommendRequest struct {
	Profile  *domain.BuyerProfile `json:"profile"`
	Limit    int                  `json:"limit"`
	MinScore int                  `json:"min_score"`
}

type RecommendResponse struct {
	Results []domain.ScoredListing `json:"results"`
	Total   int                    `json:"total"`
}

func (s *Server) rankForRequest(r *http.Request) (RecommendRequest, []domain.ScoredListing, int, error) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, nil, http.StatusBadRequest, fmt.Errorf("invalid JSON")
	}
	if req.Profile == nil {
		return req, nil, http.StatusBadRequest, fmt.Errorf("profile is required")
	}

	listings, err := s.Repo.All(r.Context())
	if err != nil {
		return req, nil, http.StatusInternalServerError, fmt.Errorf("load listings")
	}

	results := s.Engine.ScoreAll(listings, req.Profile, 0)
	if req.MinScore > 0 {
		kept := results[:0]
		for _, sl := range results {
			if sl.MatchScore >= req.MinScore {
				kept = append(kept, sl)
			}
		}
		results = kept
	}
	return req, results, http.StatusOK, nil
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, results, status, err := s.rankForRequest(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	total := len(results)
	limit := req.Limit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 10
	}
	if len(results) > limit {
		results = results[:limit]
	}

	writeJSON(w, http.StatusOK, RecommendResponse{Results: results, Total: total})
}

func (s *Server) handleRecommendExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, results, status, err := s.rankForRequest(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	f, err := export.BuildWorkbook(*req.Profile, results)
	if err != nil {
		http.Error(w, "failed to build workbook", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		http.Error(w, "failed to write workbook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="recommendations.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

// ---- Listings API ----

type ListingsListResponse struct {
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Total  int              `json:"total"`
	Items  []domain.Listing `json:"items"`
}

func (s *Server) handleListingsList(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleListingsCreate(w, r)
	case http.MethodGet:
		limit, offset := parseLimitOffset(r, 20, 0)
		q := r.URL.Query()
		params := ListParams{
			Limit:      limit,
			Offset:     offset,
			Location:   q.Get("location"),
			MinPrice:   q.Get("min_price"),
			MaxPrice:   q.Get("max_price"),
			Furnishing: q.Get("furnishing"),
			Sort:       q.Get("sort"),
		}
		items, total, err := s.Repo.List(r.Context(), params)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list_failed"})
			return
		}
		if items == nil {
			items = []domain.Listing{}
		}
		writeJSON(w, http.StatusOK, ListingsListResponse{
			Limit:  limit,
			Offset: offset,
			Total:  total,
			Items:  items,
		})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleListingsGetByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/listings/"):]
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing_id"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		l, ok, err := s.Repo.Get(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get_failed"})
			return
		}
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
			return
		}
		writeJSON(w, http.StatusOK, l)

	case http.MethodDelete:
		ok, err := s.Repo.Delete(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "delete_failed"})
			return
		}
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type CreateListingRequest struct {
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Furnishing  string   `json:"furnishing"`
	Amenities   []string `json:"amenities"`
	ImageURLs   []string `json:"image_urls"`
}

func (s *Server) handleListingsCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Location == "" {
		http.Error(w, "title and location are required", http.StatusBadRequest)
		return
	}
	if recommend.ParseCurrencyMajorUnits(req.Price) <= 0 {
		http.Error(w, "price must be a positive amount", http.StatusBadRequest)
		return
	}

	l, err := s.Repo.Create(r.Context(), domain.Listing{
		Title:       req.Title,
		Location:    req.Location,
		Price:       req.Price,
		Description: req.Description,
		Furnishing:  req.Furnishing,
		Amenities:   req.Amenities,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create_failed"})
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	// safety cap
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
