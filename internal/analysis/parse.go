package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// ErrMalformed is returned when a body is valid JSON but not an analysis response.
var ErrMalformed = errors.New("malformed analysis response")

// ParseResponse decodes an analysis response.
//
// The breakdown maps are walked in document order so the rendered
// sub-factors follow the service's ordering rather than Go map order.
func ParseResponse(raw []byte) (*Response, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	return fromResult(gjson.ParseBytes(raw))
}

// ParseBatch decodes the body of POST /analyze/batch.
func ParseBatch(raw []byte) ([]BatchResult, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	items := gjson.GetBytes(raw, "items")
	if !items.IsArray() {
		return nil, fmt.Errorf("%w: items is not a list", ErrMalformed)
	}

	var out []BatchResult
	for i, item := range items.Array() {
		resp, err := fromResult(item.Get("result"))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, BatchResult{ID: item.Get("id").String(), Result: resp})
	}
	return out, nil
}

func fromResult(doc gjson.Result) (*Response, error) {
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformed)
	}

	resp := &Response{Metrics: make(map[MetricKey]Metric, len(breakdownMetrics))}

	for _, key := range breakdownMetrics {
		m := doc.Get(string(key))
		if !m.IsObject() {
			return nil, fmt.Errorf("%w: missing metric %s", ErrMalformed, key)
		}

		breakdown := m.Get("breakdown")
		if !breakdown.IsObject() {
			return nil, fmt.Errorf("%w: %s has no breakdown", ErrMalformed, key)
		}

		// An absent score renders as NaN, a null one as zero.
		metric := Metric{Score: math.NaN()}
		if score := m.Get("score"); score.Exists() {
			metric.Score = score.Float()
		}
		breakdown.ForEach(func(k, v gjson.Result) bool {
			metric.Breakdown = append(metric.Breakdown, Entry{Key: k.String(), Value: v.Float()})
			return true
		})
		resp.Metrics[key] = metric
	}

	// Absent and null both mean the embeddings layer had nothing to say.
	if bait := doc.Get(string(EngagementBaitScore)); bait.Exists() && bait.Type != gjson.Null {
		v := bait.Float()
		resp.EngagementBait = &v
	}

	meta := doc.Get("meta")
	if !meta.IsObject() {
		return nil, fmt.Errorf("%w: missing meta", ErrMalformed)
	}
	resp.Meta = Meta{
		EmbeddingsRequested: meta.Get("embeddings_requested").Bool(),
		EmbeddingsUsed:      meta.Get("embeddings_used").Bool(),
		OpenAIAvailable:     meta.Get("openai_available").Bool(),
		VectorBackend:       meta.Get("vector_backend").String(),
	}

	return resp, nil
}
