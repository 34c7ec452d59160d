package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
)

func TestRequestLogging_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONWriter(&buf, logging.LevelInfo)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.InfoContext(r.Context(), "inside handler")
		w.WriteHeader(http.StatusAccepted)
	})
	handler := RequestLogging(logger, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/tournaments/demo-cup/standings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	id := rec.Header().Get(requestIDHeader)
	if id == "" {
		t.Fatalf("expected %s response header", requestIDHeader)
	}
	if got := strings.Count(buf.String(), `"request_id":"`+id+`"`); got != 2 {
		t.Fatalf("unexpected request id occurrences got=%d want=%d\n%s", got, 2, buf.String())
	}
	if !strings.Contains(buf.String(), `"status":202`) {
		t.Fatalf("status missing from access log: %s", buf.String())
	}
}

func TestRequestLogging_KeepsCallerRequestID(t *testing.T) {
	handler := RequestLogging(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "scoreboard-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "scoreboard-42" {
		t.Fatalf("unexpected request id got=%q want=%q", got, "scoreboard-42")
	}
}
