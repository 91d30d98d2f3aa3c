package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homematch-ph/listing-recommender/internal/domain"
	"github.com/homematch-ph/listing-recommender/internal/recommend"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine := recommend.NewEngine(recommend.DefaultConfig())
	srv := NewServer(engine, NewMemoryListingsRepo(nil))
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postListing(t *testing.T, ts *httptest.Server, req CreateListingRequest) domain.Listing {
	t.Helper()
	b, _ := json.Marshal(req)
	resp, err := http.Post(ts.URL+"/listings", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST /listings: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /listings status=%d", resp.StatusCode)
	}
	var l domain.Listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatalf("decode created listing: %v", err)
	}
	return l
}

func TestGETListingsFiltersAndSort(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	postListing(t, ts, CreateListingRequest{Title: "A", Location: "Quezon City", Price: "₱2,200,000", Amenities: []string{"Parking"}})
	postListing(t, ts, CreateListingRequest{Title: "B", Location: "quezon city, diliman", Price: "₱4,800,000", Amenities: []string{"Gym"}})
	postListing(t, ts, CreateListingRequest{Title: "C", Location: "Cebu", Price: "₱6,000,000", Amenities: []string{"Pool"}})

	resp, err := http.Get(ts.URL + "/listings?location=QUEZON&min_price=4000000&sort=price_desc&limit=20&offset=0")
	if err != nil {
		t.Fatalf("GET /listings: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /listings status=%d", resp.StatusCode)
	}

	var got ListingsListResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 1 {
		t.Fatalf("total=%d want=1", got.Total)
	}
	if len(got.Items) != 1 || got.Items[0].Title != "B" {
		t.Fatalf("items=%+v want single item B", got.Items)
	}
}

func TestListingLifecycle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	created := postListing(t, ts, CreateListingRequest{Title: "A", Location: "Makati", Price: "₱3,000,000"})
	if created.ID == "" {
		t.Fatal("created listing has no id")
	}

	resp, err := http.Get(ts.URL + "/listings/" + created.ID)
	if err != nil {
		t.Fatalf("GET by id: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET by id status=%d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/listings/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE status=%d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/listings/" + created.ID)
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status=%d want 404", resp.StatusCode)
	}
}

func TestPOSTRecommendRanksListings(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	postListing(t, ts, CreateListingRequest{Title: "Expensive", Location: "Pasig", Price: "₱9,500,000", Amenities: []string{"Gym"}})
	postListing(t, ts, CreateListingRequest{Title: "Starter", Location: "Quezon City", Price: "₱2,000,000", Amenities: []string{"Parking", "Security"}})

	body := []byte(`{
		"profile": {
			"buyer_type": "First Time Buyer",
			"monthly_income": 50000,
			"preferred_location": "Quezon City",
			"budget_range": "1M-3M"
		},
		"limit": 10
	}`)
	resp, err := http.Post(ts.URL+"/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /recommend: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /recommend status=%d", resp.StatusCode)
	}

	var got RecommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 2 || len(got.Results) != 2 {
		t.Fatalf("total=%d results=%d want 2/2", got.Total, len(got.Results))
	}
	if got.Results[0].Title != "Starter" {
		t.Fatalf("first=%q want Starter (scores %d and %d)", got.Results[0].Title, got.Results[0].MatchScore, got.Results[1].MatchScore)
	}
	if got.Results[0].MatchScore < got.Results[1].MatchScore {
		t.Fatal("results not sorted by score descending")
	}
	if got.Results[0].RecommendationReason == "" || got.Results[0].Explanation == "" {
		t.Fatal("scored listing missing reason or explanation")
	}
}

func TestPOSTRecommendMinScoreAndValidation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	postListing(t, ts, CreateListingRequest{Title: "Expensive", Location: "Pasig", Price: "₱9,500,000"})
	postListing(t, ts, CreateListingRequest{Title: "Starter", Location: "Quezon City", Price: "₱2,000,000", Amenities: []string{"Parking"}})

	body := []byte(`{
		"profile": {
			"buyer_type": "First Time Buyer",
			"monthly_income": "50,000",
			"preferred_location": "Quezon City",
			"budget_range": "1M-3M"
		},
		"min_score": 60
	}`)
	resp, err := http.Post(ts.URL+"/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /recommend: %v", err)
	}
	defer resp.Body.Close()

	var got RecommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, r := range got.Results {
		if r.MatchScore < 60 {
			t.Fatalf("result %q score %d below min_score", r.Title, r.MatchScore)
		}
	}

	// Missing profile is rejected before scoring.
	resp, err = http.Post(ts.URL+"/recommend", "application/json", strings.NewReader(`{"limit": 5}`))
	if err != nil {
		t.Fatalf("POST /recommend without profile: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", resp.StatusCode)
	}
}

func TestPOSTRecommendExportReturnsWorkbook(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	postListing(t, ts, CreateListingRequest{Title: "Starter", Location: "Quezon City", Price: "₱2,000,000", Amenities: []string{"Parking"}})

	body := []byte(`{"profile": {"buyer_type": "First Time Buyer", "monthly_income": 50000}}`)
	resp, err := http.Post(ts.URL+"/recommend/export", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /recommend/export: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("content type=%q want xlsx", ct)
	}
}
