package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/baitlens/internal/analysis"
	"github.com/f3rmion/baitlens/internal/config"
	"github.com/f3rmion/baitlens/internal/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultBody = `{"urgency_pressure":{"score":0.8,"breakdown":{"imperatives":0.9}},` +
	`"evidence_density":{"score":0.7,"breakdown":{"citation_markers":0.1}},` +
	`"arousal_intensity":{"score":0.4,"breakdown":{}},` +
	`"counterargument_absence":{"score":0.6,"breakdown":{}},` +
	`"claim_volume_vs_depth":{"score":0.3,"breakdown":{}},` +
	`"lexical_diversity":{"score":0.5,"breakdown":{}},` +
	`"engagement_bait_score":null,` +
	`"meta":{"embeddings_requested":false,"embeddings_used":false,"openai_available":false,"vector_backend":"none"}}`

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			io.WriteString(w, `{"status":"ok","openai_enabled":true,"actian_enabled":false}`)
		case "/analyze":
			body, _ := io.ReadAll(r.Body)
			if strings.Contains(string(body), `"text":""`) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				io.WriteString(w, `{"detail":"text is required"}`)
				return
			}
			io.WriteString(w, resultBody)
		case "/analyze/batch":
			io.WriteString(w, `{"items":[{"id":"a","result":`+resultBody+`},{"id":"b","result":`+resultBody+`}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSamplesCommand(t *testing.T) {
	out, _, err := run(t, "samples", "--config", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "high\nneutral\nmixed\n", out)

	out, _, err = run(t, "samples", "mixed", "--config", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, samples.Text(samples.Mixed)+"\n", out)

	_, _, err = run(t, "samples", "spicy", "--config", t.TempDir())
	assert.ErrorContains(t, err, "high, neutral, mixed")
}

func TestHealthCommand(t *testing.T) {
	srv := newService(t)

	out, _, err := run(t, "health", "--config", t.TempDir(), "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Status:  ok")
	assert.Contains(t, out, "OpenAI:  enabled")
	assert.Contains(t, out, "Actian:  disabled")
}

func TestAnalyzeCommand(t *testing.T) {
	srv := newService(t)

	out, _, err := run(t, "analyze", "--sample", "high", "--raw=false", "--config", t.TempDir(), "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Urgency Pressure: 0.80\n")
	assert.Contains(t, out, "  - imperatives: 0.90\n")
	assert.Contains(t, out, "Engagement Bait Score: Unavailable\n")
	assert.Contains(t, out, "Vector backend: none.")
}

func TestAnalyzeCommandRaw(t *testing.T) {
	srv := newService(t)

	out, _, err := run(t, "analyze", "--sample", "high", "--raw", "--config", t.TempDir(), "--server", srv.URL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \"urgency_pressure\""))
	assert.NotContains(t, out, "Urgency Pressure:")
}

func TestBatchCommand(t *testing.T) {
	srv := newService(t)
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: a\n  text: first\n- id: b\n  text: second\n"), 0644))

	out, _, err := run(t, "batch", path, "--raw=false", "--config", t.TempDir(), "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "== a ==\n")
	assert.Contains(t, out, "== b ==\n")
	assert.Equal(t, 2, strings.Count(out, "Urgency Pressure: 0.80"))
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "baitlens")

	out, _, err := run(t, "init", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, _, err = run(t, "init", "--config", dir)
	assert.ErrorContains(t, err, "already exists")
}

func TestLoadBatch(t *testing.T) {
	items, err := loadBatch(strings.NewReader("- id: one\n  text: hello\n"))
	require.NoError(t, err)
	assert.Equal(t, []analysis.BatchItem{{ID: "one", Text: "hello"}}, items)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "[]", "no items"},
		{"missing id", "- text: hello\n", "missing id"},
		{"duplicate", "- id: a\n  text: x\n- id: a\n  text: y\n", "duplicate id"},
		{"not a list", "id: a\n", "parsing batch file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadBatch(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	var b strings.Builder
	for i := 0; i <= analysis.MaxBatchItems; i++ {
		b.WriteString("- id: i" + string(rune('a'+i)) + "\n  text: x\n")
	}
	_, err = loadBatch(strings.NewReader(b.String()))
	assert.ErrorContains(t, err, "at most 10")
}
