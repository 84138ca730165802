package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fiture/adapters/model"
	"fiture/app"
	"fiture/domain/coach"
	"fiture/domain/life"
)

type gradeThreeExplainer struct{}

func (gradeThreeExplainer) Explain(x []float64, featureNames []string) ([]coach.Attribution, error) {
	return []coach.Attribution{{Feature: "PhoneTime", Penalty: 0.4}}, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	aligner, err := life.NewFeatureAligner(life.FeatureColumns)
	if err != nil {
		t.Fatalf("NewFeatureAligner failed: %v", err)
	}
	stub := &model.Stub{Proba: []float64{0, 0, 1, 0, 0}}
	pipeline := app.NewCoachPipeline(stub, gradeThreeExplainer{}, aligner, coach.DefaultLibrary(), nil, nil)
	return NewServer(pipeline, nil)
}

func predictBody() string {
	return `{"PM10": 30, "Temp": 21, "Humidity": 50, "SleepTime": 6.5,
		"ActivityTime": 1.0, "Caffeine": 2, "PhoneTime": 6.0, "MoodScore": 60}`
}

// TestHealthz verifies the liveness endpoint
func TestHealthz(t *testing.T) {
	server := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// TestPredictReturnsCard verifies the JSON response carries a full card
func TestPredictReturnsCard(t *testing.T) {
	server := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(predictBody()))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var card coach.Card
	if err := json.Unmarshal(w.Body.Bytes(), &card); err != nil {
		t.Fatalf("response is not a card: %v", err)
	}
	if !strings.Contains(card.Title, "3/5") {
		t.Errorf("expected grade 3 title, got %q", card.Title)
	}
	if len(card.Actions) == 0 {
		t.Error("expected actions in the card")
	}
}

// TestPredictHTMLFormat verifies the markdown-rendered variant
func TestPredictHTMLFormat(t *testing.T) {
	server := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/predict?format=html", strings.NewReader(predictBody()))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "3/5") {
		t.Errorf("expected rendered heading, got %s", body)
	}
}

// TestPredictRejectsBadBody verifies malformed requests get a 400, not a crash
func TestPredictRejectsBadBody(t *testing.T) {
	server := testServer(t)

	for _, body := range []string{"", "not json", `[1,2,3]`, `{"SleepTime": {"nested": 1}}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		server.Router().ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}
