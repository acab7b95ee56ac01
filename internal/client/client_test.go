package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/f3rmion/baitlens/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{"urgency_pressure":{"score":0.8,"breakdown":{"imperatives":0.9}},` +
	`"evidence_density":{"score":0.7,"breakdown":{}},` +
	`"arousal_intensity":{"score":0.4,"breakdown":{}},` +
	`"counterargument_absence":{"score":0.6,"breakdown":{}},` +
	`"claim_volume_vs_depth":{"score":0.3,"breakdown":{}},` +
	`"lexical_diversity":{"score":0.5,"breakdown":{}},` +
	`"engagement_bait_score":null,` +
	`"meta":{"embeddings_requested":false,"embeddings_used":false,"openai_available":false,"vector_backend":"none"}}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 0, quietLogger())
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		server  string
		want    string
		wantErr bool
	}{
		{name: "default", server: "", want: DefaultServer},
		{name: "trailing slash", server: "http://example.test/api/", want: "http://example.test/api"},
		{name: "https", server: "https://example.test", want: "https://example.test"},
		{name: "bad scheme", server: "ftp://example.test", wantErr: true},
		{name: "unparsable", server: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.server, 0, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Server())
		})
	}
}

func TestAnalyzeRequestShape(t *testing.T) {
	for _, embeddings := range []bool{true, false} {
		var gotQuery, gotType, gotMethod, gotPath string
		var gotBody analysis.Request

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("embeddings")
			gotType = r.Header.Get("Content-Type")
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			io.WriteString(w, okBody)
		})

		out := c.Analyze(context.Background(), "some text", embeddings)
		require.True(t, out.OK(), out.Message)

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/analyze", gotPath)
		assert.Equal(t, map[bool]string{true: "true", false: "false"}[embeddings], gotQuery)
		assert.Equal(t, "application/json", gotType)
		assert.Equal(t, "some text", gotBody.Text)
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, okBody)
	})

	out := c.Analyze(context.Background(), "text", false)
	require.True(t, out.OK())
	assert.Equal(t, http.StatusOK, out.Status)
	assert.Empty(t, out.Message)
	assert.Equal(t, 0.8, out.Response.Metric(analysis.UrgencyPressure).Score)

	// Pretty printed with two-space indent in server key order.
	assert.True(t, strings.HasPrefix(out.Raw, "{\n  \"urgency_pressure\": {\n    \"score\": 0.8,"))
	assert.True(t, strings.HasSuffix(out.Raw, "}"))
}

func TestAnalyzeErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "detail", body: `{"detail":"text is required"}`, want: "text is required"},
		{name: "no detail", body: `{"error":"x"}`, want: "Request failed"},
		{name: "empty detail", body: `{"detail":""}`, want: "Request failed"},
		{name: "null detail", body: `{"detail":null}`, want: "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				io.WriteString(w, tt.body)
			})

			out := c.Analyze(context.Background(), "short", false)
			assert.False(t, out.OK())
			assert.Equal(t, tt.want, out.Message)
			assert.Equal(t, http.StatusUnprocessableEntity, out.Status)
			assert.True(t, out.HasRaw(), "failed bodies are still mirrored")
		})
	}
}

func TestAnalyzeMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	})

	out := c.Analyze(context.Background(), "text", false)
	assert.False(t, out.OK())
	assert.False(t, out.HasRaw())
	assert.Contains(t, out.Message, "parsing response body")
}

func TestAnalyzeUnexpectedShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"ok"}`)
	})

	out := c.Analyze(context.Background(), "text", false)
	assert.False(t, out.OK())
	assert.True(t, out.HasRaw())
	assert.Contains(t, out.Message, analysis.ErrMalformed.Error())
}

func TestAnalyzeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, 0, quietLogger())
	require.NoError(t, err)

	out := c.Analyze(context.Background(), "text", true)
	assert.False(t, out.OK())
	assert.False(t, out.HasRaw())
	assert.NotEmpty(t, out.Message)
	assert.Equal(t, 0, out.Status)
}

func TestAnalyzeCanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, okBody)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := c.Analyze(ctx, "text", false)
	assert.False(t, out.OK())
	assert.Contains(t, out.Message, context.Canceled.Error())
}

func TestAnalyzeBatch(t *testing.T) {
	var got analysis.BatchRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze/batch", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("embeddings"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"items":[{"id":"first","result":`+okBody+`},{"id":"second","result":`+okBody+`}]}`)
	})

	items := []analysis.BatchItem{{ID: "first", Text: "a"}, {ID: "second", Text: "b"}}
	out := c.AnalyzeBatch(context.Background(), items, true)
	require.True(t, out.OK(), out.Message)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "first", out.Results[0].ID)
	assert.Equal(t, "second", out.Results[1].ID)
	assert.Equal(t, items, got.Items)
}

func TestAnalyzeBatchRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":"Value error, Batch must include at least 1 item"}`)
	})

	out := c.AnalyzeBatch(context.Background(), nil, false)
	assert.False(t, out.OK())
	assert.Equal(t, "Value error, Batch must include at least 1 item", out.Message)
	assert.True(t, strings.Contains(out.Raw, "\"detail\""))
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		io.WriteString(w, `{"status":"ok","openai_enabled":false,"actian_enabled":true}`)
	})

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &analysis.Health{Status: "ok", ActianEnabled: true}, h)
}

func TestHealthBadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), "503")
}
