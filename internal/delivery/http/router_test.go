package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "passin/docs"
	"passin/internal/delivery/http/controllers"
	"passin/internal/delivery/http/helpers"
	"passin/internal/observability"
	"passin/internal/repository/postgres"
	"passin/internal/services"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var eventColumns = []string{"id", "title", "details", "maximum_attendees", "slug", "attendees_amount"}

func newTestServer(t *testing.T) (*httptest.Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	repo := observability.WithEventRepositoryTelemetry(postgres.NewEventRepository(db, 0), metrics, nil)
	svc := services.NewEventService(repo)

	mux := NewRouter(
		controllers.NewEventController(testLogger, svc),
		controllers.NewHealthController(testLogger, db),
		registry,
	)
	srv := httptest.NewServer(NewHandler(mux, testLogger, metrics, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv, mock
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestRouter_GetEvent_Scenarios(t *testing.T) {
	t.Run("existing event with attendees", func(t *testing.T) {
		srv, mock := newTestServer(t)
		mock.ExpectQuery(`FROM events e\s+WHERE e\.id = \$1`).
			WithArgs("11111111-1111-1111-1111-111111111111").
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow("11111111-1111-1111-1111-111111111111", "Conf", nil, nil, "conf", int64(3)))

		resp, body := get(t, srv.URL+"/events/11111111-1111-1111-1111-111111111111")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"id":"11111111-1111-1111-1111-111111111111","title":"Conf","details":null,"maximumAttendees":null,"slug":"conf","attendeesAmount":3}`, string(body))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown event", func(t *testing.T) {
		srv, mock := newTestServer(t)
		mock.ExpectQuery(`FROM events e\s+WHERE e\.id = \$1`).
			WithArgs("22222222-2222-2222-2222-222222222222").
			WillReturnRows(sqlmock.NewRows(eventColumns))

		resp, body := get(t, srv.URL+"/events/22222222-2222-2222-2222-222222222222")

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		var apiErr helpers.APIError
		require.NoError(t, json.Unmarshal(body, &apiErr))
		assert.Equal(t, helpers.ErrCodeNotFound, apiErr.Code)
		assert.Equal(t, "Event not found.", apiErr.Message)
		assert.NotContains(t, string(body), "attendeesAmount")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id never reaches storage", func(t *testing.T) {
		srv, mock := newTestServer(t)

		resp, body := get(t, srv.URL+"/events/not-a-uuid")

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var apiErr helpers.APIError
		require.NoError(t, json.Unmarshal(body, &apiErr))
		assert.Equal(t, helpers.ErrCodeBadRequest, apiErr.Code)
		assert.NotEqual(t, "Event not found.", apiErr.Message)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure", func(t *testing.T) {
		srv, mock := newTestServer(t)
		mock.ExpectQuery(`FROM events e\s+WHERE e\.id = \$1`).
			WillReturnError(sql.ErrConnDone)

		resp, body := get(t, srv.URL+"/events/11111111-1111-1111-1111-111111111111")

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var apiErr helpers.APIError
		require.NoError(t, json.Unmarshal(body, &apiErr))
		assert.Equal(t, helpers.ErrCodeInternalError, apiErr.Code)
		assert.NotContains(t, apiErr.Message, "connection")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRouter_Operations(t *testing.T) {
	t.Run("readiness pings the database", func(t *testing.T) {
		srv, mock := newTestServer(t)
		mock.ExpectPing()

		resp, _ := get(t, srv.URL+"/health/ready")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("liveness", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, _ := get(t, srv.URL+"/health/live")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("metrics expose lookup outcomes", func(t *testing.T) {
		srv, mock := newTestServer(t)
		mock.ExpectQuery(`FROM events e\s+WHERE e\.id = \$1`).
			WillReturnRows(sqlmock.NewRows(eventColumns))
		get(t, srv.URL+"/events/22222222-2222-2222-2222-222222222222")

		resp, body := get(t, srv.URL+"/metrics")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `passin_event_lookups_total{outcome="not_found"} 1`)
		assert.True(t, strings.Contains(string(body), `route="GET /events/{eventId}"`))
	})

	t.Run("swagger document", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, body := get(t, srv.URL+"/swagger/doc.json")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "/events/{eventId}")
	})
}

// requestLog collects request log records emitted by the handler chain.
type requestLog struct {
	records []slog.Record
}

func (h *requestLog) Enabled(context.Context, slog.Level) bool { return true }

func (h *requestLog) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *requestLog) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *requestLog) WithGroup(string) slog.Handler { return h }

func TestNewHandler_PanicIsLoggedAndCounted(t *testing.T) {
	logs := &requestLog{}
	logger := slog.New(logs)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{eventId}", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := NewHandler(mux, logger, metrics, []string{"*"})
	rr := httptest.NewRecorder()

	require.NotPanics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/11111111-1111-1111-1111-111111111111", nil))
	})

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var apiErr helpers.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	assert.Equal(t, helpers.ErrCodeInternalError, apiErr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "GET /events/{eventId}", "500")))

	var messages []string
	for _, r := range logs.records {
		messages = append(messages, r.Message)
		if r.Message == "request" {
			assert.Equal(t, slog.LevelError, r.Level)
		}
	}
	assert.Equal(t, []string{"panic recovered", "request"}, messages)
}
