package gridiron

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/platform/resilience"
	"github.com/riskibarqy/survivor-pool/internal/usecase"
)

const scoreboardFixture = `{
  "events": [
    {
      "id": "401671200",
      "date": "2025-09-14T17:00Z",
      "name": "Buffalo Bills at Kansas City Chiefs",
      "week": {"number": 2},
      "season": {"year": 2025, "type": 2},
      "status": {"type": {"state": "post", "completed": true}},
      "competitions": [
        {
          "competitors": [
            {"homeAway": "home", "score": "27", "team": {"displayName": "Kansas City Chiefs", "abbreviation": "KC"}},
            {"homeAway": "away", "score": "20", "team": {"displayName": "Buffalo Bills", "abbreviation": "BUF"}}
          ]
        }
      ]
    },
    {
      "id": "401671100",
      "date": "2025-09-07T17:00Z",
      "name": "Dallas Cowboys at Philadelphia Eagles",
      "week": {"number": 1},
      "season": {"year": 2025, "type": 2},
      "status": {"type": {"state": "pre", "completed": false}},
      "competitions": [
        {
          "competitors": [
            {"homeAway": "HOME", "score": "0", "team": {"displayName": "Philadelphia Eagles", "abbreviation": "PHI"}},
            {"homeAway": "AWAY", "score": "", "team": {"displayName": "Dallas Cowboys", "abbreviation": "DAL"}}
          ]
        }
      ]
    }
  ]
}`

func newScoreboardClient(t *testing.T, handler http.HandlerFunc, mutate func(*ClientConfig)) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := ClientConfig{
		BaseURL:          server.URL,
		Token:            "secret-token",
		Timeout:          2 * time.Second,
		RateLimitBackoff: 10 * time.Millisecond,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestClient_FetchEventsByYear(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newScoreboardClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if got := r.URL.Query().Get("year"); got != "2025" {
			t.Errorf("expected year=2025, got %q", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "secret-token" {
			t.Errorf("expected apikey query parameter, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scoreboardFixture))
	}, nil)

	events, err := client.FetchEventsByYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("FetchEventsByYear error: %v", err)
	}
	if requests.Load() != 1 {
		t.Fatalf("expected a single request, got %d", requests.Load())
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	// Sorted by week regardless of feed order.
	upcoming, finished := events[0], events[1]
	if upcoming.ExternalID != "401671100" || upcoming.Week != 1 {
		t.Fatalf("unexpected first event: %+v", upcoming)
	}
	if upcoming.Status != "pre" || upcoming.GameType != "regular" {
		t.Fatalf("unexpected upcoming state: %+v", upcoming)
	}
	if upcoming.Competitors[0].HomeAway != "home" || upcoming.Competitors[1].Score != nil {
		t.Fatalf("unexpected upcoming competitors: %+v", upcoming.Competitors)
	}

	if finished.Status != "final" {
		t.Fatalf("completed events map to final, got %s", finished.Status)
	}
	if !finished.KickoffAt.Equal(time.Date(2025, 9, 14, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected kickoff: %s", finished.KickoffAt)
	}
	home := finished.Competitors[0]
	if home.Abbreviation != "KC" || home.Score == nil || *home.Score != 27 {
		t.Fatalf("unexpected home competitor: %+v", home)
	}
}

func TestClient_FetchEventsByYear_RateLimitRetriesOnce(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newScoreboardClient(t, func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(scoreboardFixture))
	}, nil)

	events, err := client.FetchEventsByYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("FetchEventsByYear error: %v", err)
	}
	if requests.Load() != 2 {
		t.Fatalf("expected one retry after rate limiting, got %d requests", requests.Load())
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}

func TestClient_FetchEventsByYear_RateLimitGivesUpAfterRetry(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newScoreboardClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	if _, err := client.FetchEventsByYear(context.Background(), 2025); err == nil {
		t.Fatal("expected an error after the second rate limit response")
	}
	if requests.Load() != 2 {
		t.Fatalf("rate limiting retries exactly once, got %d requests", requests.Load())
	}
}

func TestClient_FetchEventsByYear_ClientErrorFailsFast(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newScoreboardClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 3
	})

	if _, err := client.FetchEventsByYear(context.Background(), 2025); err == nil {
		t.Fatal("expected an error on 404")
	}
	if requests.Load() != 1 {
		t.Fatalf("client errors must not be retried, got %d requests", requests.Load())
	}
}

func TestClient_FetchEventsByYear_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	client := newScoreboardClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	if _, err := client.FetchEventsByYear(context.Background(), 2025); err == nil {
		t.Fatal("expected the first call to fail")
	}
	_, err := client.FetchEventsByYear(context.Background(), 2025)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("open breaker must short-circuit with ErrDependencyUnavailable, got %v", err)
	}
}

func TestClient_FetchEventsByYear_InvalidYear(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	if _, err := client.FetchEventsByYear(context.Background(), 0); err == nil {
		t.Fatal("expected an error for year 0")
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText("dial failed for /scoreboard?year=2025&apikey=secret-token", "secret-token")
	if strings.Contains(got, "secret-token") {
		t.Fatalf("token leaked: %s", got)
	}
	if !strings.Contains(got, "apikey=REDACTED") {
		t.Fatalf("expected redaction marker, got %s", got)
	}
}

func TestMapScoreboardEvent_MalformedDate(t *testing.T) {
	t.Parallel()

	item := scoreboardEvent{ID: "ev-1", Date: "not-a-date"}
	item.Competitions = []scoreboardCompetition{{}}
	if _, ok := mapScoreboardEvent(item); ok {
		t.Fatal("malformed dates must be rejected")
	}
}
