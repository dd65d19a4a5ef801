package recclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"coreselect/internal/recommend/contract"
)

const okBody = `{
	"motherboard": "MSI B550-A PRO", "cpu": "AMD Ryzen 5 5600", "memory": "G.Skill Ripjaws V 32GB",
	"storage": "Crucial P3 1TB", "gpu": "AMD Radeon RX 7600", "case": "NZXT H5 Flow",
	"cpuCooler": "Thermalright Assassin X 120", "caseFans": "Noctua NF-A12x25",
	"psu": "Corsair CX550", "total_cost": 864.82, "explanation": "Balanced build."
}`

func TestRecommendSuccess(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/recommend" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	client := New(srv.URL+"/", 0)
	res, err := client.Recommend(context.Background(), contract.Request{
		Budget:          1200,
		Priorities:      []string{"Gaming Performance", "Streaming"},
		WantToPlayGames: []string{"Elden Ring"},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.CPUCooler != "Thermalright Assassin X 120" || res.TotalCost != 864.82 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got["budget"] != float64(1200) {
		t.Fatalf("unexpected budget sent: %v", got["budget"])
	}
	if _, ok := got["wantToPlayGames"]; !ok {
		t.Fatalf("games should be sent when gaming is a top priority: %v", got)
	}
}

func TestRecommendDropsGamesWithoutGaming(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Recommend(context.Background(), contract.Request{
		Budget:          1200,
		Priorities:      []string{"Programming"},
		WantToPlayGames: []string{"Elden Ring"},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if _, ok := got["wantToPlayGames"]; ok {
		t.Fatalf("games should be omitted: %v", got)
	}
}

func TestRecommendErrorKinds(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{"status with error body", http.StatusInternalServerError, `{"error":"backend unavailable"}`, KindStatus, "backend unavailable"},
		{"status without body", http.StatusBadGateway, `<html>bad gateway</html>`, KindStatus, "Failed to get recommendation"},
		{"backend error on 200", http.StatusOK, `{"error":"Missing required fields in recommendation: psu"}`, KindBackend, "Missing required fields in recommendation: psu"},
		{"malformed", http.StatusOK, `{"cpu": "only"`, KindMalformed, "Invalid recommendation response"},
		{"incomplete", http.StatusOK, `{"cpu": "only"}`, KindMalformed, "Invalid recommendation response"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, 0).Recommend(context.Background(), contract.Request{Budget: 1000, Priorities: []string{"Programming"}})
			var recErr *Error
			if !errors.As(err, &recErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if recErr.Kind != tc.kind || recErr.Error() != tc.message {
				t.Fatalf("got kind=%s message=%q", recErr.Kind, recErr.Error())
			}
		})
	}
}

func TestRecommendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := New(addr, 0).Recommend(context.Background(), contract.Request{Budget: 1000, Priorities: []string{"Programming"}})
	var recErr *Error
	if !errors.As(err, &recErr) || recErr.Kind != KindTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestUsersAndGreeting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			_, _ = w.Write([]byte(`{"location":"home","message":"Welcome to PC Part Recommender!"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/users/":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Justin Nguyen","major":"Computer Science"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/user/":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":4,"name":"Ada","major":"Math"}`))
		case r.URL.Path == "/parts/keyboards":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid component type"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, 0)
	ctx := context.Background()

	greeting, err := client.Greeting(ctx)
	if err != nil || greeting.Location != "home" {
		t.Fatalf("Greeting: %+v %v", greeting, err)
	}
	users, err := client.ListUsers(ctx)
	if err != nil || len(users) != 1 || users[0].Name != "Justin Nguyen" {
		t.Fatalf("ListUsers: %+v %v", users, err)
	}
	user, err := client.CreateUser(ctx, "Ada", "Math")
	if err != nil || user.ID != 4 {
		t.Fatalf("CreateUser: %+v %v", user, err)
	}
	_, err = client.ListParts(ctx, "keyboards")
	var recErr *Error
	if !errors.As(err, &recErr) || recErr.Status != http.StatusBadRequest || recErr.Message != "Invalid component type" {
		t.Fatalf("ListParts: expected 400 error, got %v", err)
	}
}
