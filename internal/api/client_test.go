package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Riddhi-crypto/Rooha/internal/server"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
)

// stubBackend runs the development stub behind httptest and returns a client
// wired to it with a cookie jar.
func stubBackend(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(server.NewStubHandler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New failed: %v", err)
	}
	return NewClient(srv.URL, &http.Client{Jar: jar}, nil)
}

func TestAnalyzeText(t *testing.T) {
	client := stubBackend(t)
	ctx := context.Background()

	result, err := client.AnalyzeText(ctx, "what a beautiful morning")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if result.Session() == "" {
		t.Error("Session() is empty, want an id")
	}
	if !result.Emotion.Known() {
		t.Errorf("emotion %q not in the known set", result.Emotion)
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Errorf("confidence = %v, want (0, 1]", result.Confidence)
	}
	if len(result.Tracks) == 0 {
		t.Error("no tracks returned")
	}
}

func TestAnalyzeFace(t *testing.T) {
	client := stubBackend(t)

	result, err := client.AnalyzeFace(context.Background(), "data:image/jpeg;base64,AAAA")
	if err != nil {
		t.Fatalf("AnalyzeFace failed: %v", err)
	}
	if result.Session() == "" {
		t.Error("Session() is empty, want an id")
	}
}

func TestErrorEnvelope(t *testing.T) {
	client := stubBackend(t)

	_, err := client.AnalyzeText(context.Background(), "")
	if !errors.Is(err, shared.ErrAPIRequest) {
		t.Fatalf("error = %v, want ErrAPIRequest", err)
	}
	if !strings.Contains(err.Error(), "No text provided") {
		t.Errorf("error %q does not carry the server message", err)
	}
}

func TestFeedback(t *testing.T) {
	client := stubBackend(t)
	ctx := context.Background()

	result, err := client.AnalyzeText(ctx, "okay day")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if err := client.SendFeedback(ctx, result.Session(), 1); err != nil {
		t.Errorf("SendFeedback failed: %v", err)
	}

	if err := client.SendFeedback(ctx, "999999", -1); !errors.Is(err, shared.ErrAPIRequest) {
		t.Errorf("feedback on unknown session: error = %v, want ErrAPIRequest", err)
	}
}

func TestAuthFlow(t *testing.T) {
	client := stubBackend(t)
	ctx := context.Background()

	t.Run("status starts logged out", func(t *testing.T) {
		status, err := client.AuthStatusCheck(ctx)
		if err != nil {
			t.Fatalf("AuthStatusCheck failed: %v", err)
		}
		if status.LoggedIn {
			t.Error("LoggedIn = true before login")
		}
	})

	t.Run("wrong password carries the server message", func(t *testing.T) {
		err := client.Login(ctx, "demo@rooha.dev", "wrong")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Fatalf("error = %v, want ErrAuthFailed", err)
		}
		if !strings.Contains(err.Error(), "Invalid email or password") {
			t.Errorf("error %q does not carry the server message", err)
		}
	})

	t.Run("register logs the user in", func(t *testing.T) {
		if err := client.Register(ctx, "tester", "tester@example.com", "secret"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		status, err := client.AuthStatusCheck(ctx)
		if err != nil {
			t.Fatalf("AuthStatusCheck failed: %v", err)
		}
		if !status.LoggedIn || status.Username != "tester" {
			t.Errorf("status = %+v, want logged in as tester", status)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := client.Register(ctx, "other", "tester@example.com", "secret")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("error = %v, want ErrAuthFailed", err)
		}
	})

	t.Run("logout clears the session", func(t *testing.T) {
		if err := client.Logout(ctx); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		status, err := client.AuthStatusCheck(ctx)
		if err != nil {
			t.Fatalf("AuthStatusCheck failed: %v", err)
		}
		if status.LoggedIn {
			t.Error("LoggedIn = true after logout")
		}
	})
}

func TestHistoryAndStats(t *testing.T) {
	client := stubBackend(t)
	ctx := context.Background()

	t.Run("require login", func(t *testing.T) {
		if _, err := client.History(ctx); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("History error = %v, want ErrAPIRequest", err)
		}
		if _, err := client.Stats(ctx); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("Stats error = %v, want ErrAPIRequest", err)
		}
	})

	if err := client.Login(ctx, "demo@rooha.dev", "demo"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := client.AnalyzeText(ctx, "good"); err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}
	if _, err := client.AnalyzeText(ctx, "bad"); err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	t.Run("history is newest first", func(t *testing.T) {
		entries, err := client.History(ctx)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("len(entries) = %d, want 2", len(entries))
		}
		if entries[0].InputText != "bad" {
			t.Errorf("entries[0].InputText = %q, want the most recent submission", entries[0].InputText)
		}
		if entries[0].CreatedAt.IsZero() {
			t.Error("CreatedAt did not parse")
		}
	})

	t.Run("stats aggregate sessions", func(t *testing.T) {
		stats, err := client.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats failed: %v", err)
		}
		if stats.TotalSessions != 2 {
			t.Errorf("TotalSessions = %d, want 2", stats.TotalSessions)
		}
		if stats.AvgConfidencePercent() <= 0 {
			t.Errorf("AvgConfidencePercent() = %d, want positive", stats.AvgConfidencePercent())
		}
	})
}

func TestStatsOrdering(t *testing.T) {
	client := stubBackend(t)
	ctx := context.Background()

	if err := client.Login(ctx, "demo@rooha.dev", "demo"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Three submissions of the same text share one emotion, so it must come
	// back first in the breakdown.
	dominant, err := client.AnalyzeText(ctx, "what a wonderful day")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}
	for _, text := range []string{"what a wonderful day", "what a wonderful day", "so tired", "left out"} {
		if _, err := client.AnalyzeText(ctx, text); err != nil {
			t.Fatalf("AnalyzeText failed: %v", err)
		}
	}

	stats, err := client.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if got := stats.TopEmotion(); got != string(dominant.Emotion) {
		t.Errorf("TopEmotion() = %q, want %q", got, dominant.Emotion)
	}
	for i := 1; i < len(stats.ByEmotion); i++ {
		if stats.ByEmotion[i].Count > stats.ByEmotion[i-1].Count {
			t.Errorf("by_emotion not ordered by count: %+v", stats.ByEmotion)
		}
	}
}

func TestConnectionErrors(t *testing.T) {
	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		client := NewClient(srv.URL, nil, nil)
		_, err := client.AnalyzeText(context.Background(), "hello")
		if !errors.Is(err, shared.ErrConnection) {
			t.Errorf("error = %v, want ErrConnection", err)
		}
	})

	t.Run("non-JSON failure body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Bad Gateway", http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		client := NewClient(srv.URL, nil, nil)
		_, err := client.AnalyzeText(context.Background(), "hello")
		if !errors.Is(err, shared.ErrConnection) {
			t.Errorf("error = %v, want ErrConnection", err)
		}
	})
}

func TestSessionIDRoundTrip(t *testing.T) {
	// The id arrives as a JSON integer and must go back out unquoted.
	client := stubBackend(t)
	ctx := context.Background()

	result, err := client.AnalyzeText(ctx, "round trip")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if err := client.SendFeedback(ctx, result.Session(), 1); err != nil {
		t.Errorf("SendFeedback with round-tripped id failed: %v", err)
	}
}
