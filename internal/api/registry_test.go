package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
)

type fakeEndpoint struct{ hits int }

func (e *fakeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/fake", func(w http.ResponseWriter, r *http.Request) {
		e.hits++
		w.WriteHeader(http.StatusNoContent)
	}
}

func (e *fakeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{Use: "fake"}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	ep := &fakeEndpoint{}
	reg.Register(ep)

	if len(reg.Endpoints()) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(reg.Endpoints()))
	}

	t.Run("routes", func(t *testing.T) {
		mux := http.NewServeMux()
		reg.RegisterRoutes(mux)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fake", nil))
		if rec.Code != http.StatusNoContent || ep.hits != 1 {
			t.Errorf("route not wired: status %d, hits %d", rec.Code, ep.hits)
		}

		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fake", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for the wrong method, got %d", rec.Code)
		}
	})

	t.Run("commands", func(t *testing.T) {
		apiCmd := reg.BuildCommands(func() string { return "http://localhost:8080" })
		if apiCmd.Use != "api" {
			t.Errorf("unexpected parent command: %s", apiCmd.Use)
		}
		sub, _, err := apiCmd.Find([]string{"fake"})
		if err != nil || sub.Use != "fake" {
			t.Errorf("fake subcommand not attached: %v", err)
		}
	})
}
