package render

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/f3rmion/baitlens/internal/analysis"
)

// FormatScore renders v with exactly two fractional digits.
//
// Rounding follows the browser's toFixed(2): the exact binary value is
// rounded to the nearest hundredth and an exact tie goes away from zero.
// strconv alone rounds ties to even, so ties are detected and bumped.
func FormatScore(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Covers negative zero.
		return "0.00"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}

	if hundredths, tie := exactTie(abs); tie {
		whole := new(big.Int).Add(hundredths, big.NewInt(1))
		return sign + hundredthsString(whole)
	}
	return sign + strconv.FormatFloat(abs, 'f', 2, 64)
}

// exactTie reports whether abs*100 lies exactly halfway between two integers,
// returning the lower one.
func exactTie(abs float64) (*big.Int, bool) {
	scaled := new(big.Float).SetPrec(256).SetFloat64(abs)
	scaled.Mul(scaled, big.NewFloat(100).SetPrec(256))

	floor, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetPrec(256).SetInt(floor))
	return floor, frac.Cmp(big.NewFloat(0.5)) == 0
}

func hundredthsString(n *big.Int) string {
	s := n.String()
	for len(s) < 3 {
		s = "0" + s
	}
	return s[:len(s)-2] + "." + s[len(s)-2:]
}

// HumanizeLabel turns a breakdown key into display text.
func HumanizeLabel(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// FixRequestSummary replaces the meta summary whenever a request fails.
const FixRequestSummary = "Fix the request and try again."

// MetaSummary describes how the service handled the embeddings layer.
func MetaSummary(meta analysis.Meta) string {
	return "Embeddings requested: " + strconv.FormatBool(meta.EmbeddingsRequested) + ". " +
		"Embeddings used: " + strconv.FormatBool(meta.EmbeddingsUsed) + ". " +
		"OpenAI available: " + strconv.FormatBool(meta.OpenAIAvailable) + ". " +
		"Vector backend: " + meta.VectorBackend + "."
}
