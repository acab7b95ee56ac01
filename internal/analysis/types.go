// Package analysis holds the request and response types of the analysis service.
package analysis

// MetricKey identifies one scored dimension in an analysis response.
type MetricKey string

const (
	UrgencyPressure        MetricKey = "urgency_pressure"
	EvidenceDensity        MetricKey = "evidence_density"
	ArousalIntensity       MetricKey = "arousal_intensity"
	CounterargumentAbsence MetricKey = "counterargument_absence"
	ClaimVolumeVsDepth     MetricKey = "claim_volume_vs_depth"
	LexicalDiversity       MetricKey = "lexical_diversity"
	EngagementBaitScore    MetricKey = "engagement_bait_score" // Score only, no breakdown
)

// Limits enforced by the analysis service. The client only displays them;
// violations come back as a 422 with a detail message.
const (
	MinTextLen    = 50
	MaxTextLen    = 50_000
	MaxBatchItems = 10
)

// breakdownMetrics is the fixed display order of the metrics with a breakdown.
var breakdownMetrics = []MetricKey{
	UrgencyPressure,
	EvidenceDensity,
	ArousalIntensity,
	CounterargumentAbsence,
	ClaimVolumeVsDepth,
	LexicalDiversity,
}

var labels = map[MetricKey]string{
	UrgencyPressure:        "Urgency Pressure",
	EvidenceDensity:        "Low Evidence Signal",
	ArousalIntensity:       "Arousal Intensity",
	CounterargumentAbsence: "Counterargument Absence",
	ClaimVolumeVsDepth:     "Claim Volume vs Depth",
	LexicalDiversity:       "Lexical Diversity",
	EngagementBaitScore:    "Engagement Bait Score",
}

// BreakdownMetrics returns the six breakdown metrics in display order.
func BreakdownMetrics() []MetricKey {
	out := make([]MetricKey, len(breakdownMetrics))
	copy(out, breakdownMetrics)
	return out
}

// Label returns the display title for a metric.
// Unknown keys fall back to the raw key.
func Label(key MetricKey) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return string(key)
}

// Request is the body of POST /analyze.
type Request struct {
	Text string `json:"text"`
}

// BatchItem is one entry of a batch request.
type BatchItem struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// BatchRequest is the body of POST /analyze/batch.
type BatchRequest struct {
	Items []BatchItem `json:"items"`
}

// Entry is a single named contribution to a metric score.
type Entry struct {
	Key   string
	Value float64
}

// Metric is a score with the sub-factors that produced it.
// Breakdown keeps the order the service sent.
type Metric struct {
	Score     float64
	Breakdown []Entry
}

// Meta reports how the service handled the embeddings layer.
type Meta struct {
	EmbeddingsRequested bool   `json:"embeddings_requested"`
	EmbeddingsUsed      bool   `json:"embeddings_used"`
	OpenAIAvailable     bool   `json:"openai_available"`
	VectorBackend       string `json:"vector_backend"`
}

// Response is a successful analysis result.
type Response struct {
	Metrics map[MetricKey]Metric

	// EngagementBait is nil when the embeddings layer produced no score.
	EngagementBait *float64

	Meta Meta
}

// Metric returns the metric stored under key.
func (r *Response) Metric(key MetricKey) Metric {
	return r.Metrics[key]
}

// BatchResult pairs a batch item id with its analysis.
type BatchResult struct {
	ID     string
	Result *Response
}

// Health is the body of GET /health.
type Health struct {
	Status        string `json:"status"`
	OpenAIEnabled bool   `json:"openai_enabled"`
	ActianEnabled bool   `json:"actian_enabled"`
}
