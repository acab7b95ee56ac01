// Package samples provides the canned texts offered as quick inputs.
package samples

import "fmt"

// Key names a sample text.
type Key string

const (
	High    Key = "high"
	Neutral Key = "neutral"
	Mixed   Key = "mixed"
)

var order = []Key{High, Neutral, Mixed}

var texts = map[Key]string{
	High: "Act now. This is your last chance to see the truth before it disappears. " +
		"Everyone knows they are lying, and if you do not share this immediately, more people will be fooled. " +
		"There is no middle ground, and the answer is obvious.",
	Neutral: "A new policy brief reviewed three implementation options for transit funding. " +
		"According to the report, ridership increased by 14 percent in pilot cities, but the authors note cost tradeoffs, " +
		"timeline risks, and the need for further evaluation before statewide rollout.",
	Mixed: "This proposal could make a real difference if adopted carefully. " +
		"Supporters say it may improve access and reduce delays, but several assumptions still need evidence, " +
		"and the long-term impact depends on funding, staffing, and how local agencies implement the plan.",
}

// Keys returns every sample key in display order.
func Keys() []Key {
	out := make([]Key, len(order))
	copy(out, order)
	return out
}

// Lookup returns the text for key.
func Lookup(key Key) (string, bool) {
	t, ok := texts[key]
	return t, ok
}

// Text returns the text for key. It panics on an unknown key, since keys
// always come from Keys.
func Text(key Key) string {
	t, ok := texts[key]
	if !ok {
		panic(fmt.Sprintf("samples: unknown key %q", key))
	}
	return t
}
