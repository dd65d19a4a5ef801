package recommend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"coreselect/internal/recommend/contract"
)

func newTestRouter(t *testing.T, picker Picker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := NewService(NewMemoryRepo(), sampleCatalog(t), picker)
	NewHandler(svc).RegisterRoutes(router)
	return router
}

func postRecommend(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	msg, _ := body["error"].(string)
	return msg
}

func TestRecommendRequiresBudget(t *testing.T) {
	router := newTestRouter(t, CatalogPicker{})

	resp := postRecommend(router, `{"priorities":["Gaming Performance"]}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "Budget is required" {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestRecommendRequiresPriorities(t *testing.T) {
	router := newTestRouter(t, CatalogPicker{})

	resp := postRecommend(router, `{"budget":1500,"priorities":[]}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "At least one priority is required" {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestRecommendBudgetTooLow(t *testing.T) {
	router := newTestRouter(t, CatalogPicker{})

	resp := postRecommend(router, `{"budget":300,"priorities":["Programming"]}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "total budget too low to meet fixed minimums" {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestRecommendAndReadBack(t *testing.T) {
	router := newTestRouter(t, CatalogPicker{})

	resp := postRecommend(router, `{"budget":1500,"priorities":["Gaming Performance"],"wantToPlayGames":["Elden Ring"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var res contract.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.CPU == "" || res.CaseFans == "" {
		t.Fatalf("incomplete result %+v", res)
	}
	id := resp.Header().Get("X-Recommendation-Id")
	if id == "" {
		t.Fatalf("missing X-Recommendation-Id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/recommendations/"+id, nil)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, req)
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}
	var rec Record
	if err := json.Unmarshal(getResp.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.Source != SourceCatalog || rec.Result.CPU != res.CPU {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(rec.Request.WantToPlayGames) != 1 {
		t.Fatalf("expected games kept when gaming is selected, got %+v", rec.Request)
	}
}

func TestGetRecommendationNotFound(t *testing.T) {
	router := newTestRouter(t, CatalogPicker{})

	for _, id := range []string{"not-a-uuid", "0b8f8f3e-9d5c-4c55-9a8e-0c6f5d0c2b11"} {
		req := httptest.NewRequest(http.MethodGet, "/recommendations/"+id, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", id, resp.Code)
		}
	}
}

func TestRecommendLLMMissingFieldsIs500(t *testing.T) {
	router := newTestRouter(t, LLMPicker{Client: &stubLLM{out: `{"cpu":"AMD Ryzen 5 5600"}`}})

	resp := postRecommend(router, `{"budget":1500,"priorities":["Programming"]}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); !strings.HasPrefix(msg, "Missing required fields in recommendation: motherboard") {
		t.Fatalf("unexpected error %q", msg)
	}
}
