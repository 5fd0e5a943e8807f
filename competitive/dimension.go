package competitive

// Dimension wraps one comparative dimension's outcome. Exactly one side is
// set: Data carries the computed payload, Unavailable carries the reason the
// dimension could not be computed (e.g. no price data at all). A missing
// dimension is never fatal to the analysis; the summarizer simply omits its
// sub-score.
type Dimension[T any] struct {
	Data        *T     `json:"data,omitempty"`
	Unavailable string `json:"unavailable,omitempty"`
}

// Available wraps a computed dimension payload.
func Available[T any](payload T) Dimension[T] {
	return Dimension[T]{Data: &payload}
}

// NotAvailable marks a dimension as uncomputable with a reason.
func NotAvailable[T any](reason string) Dimension[T] {
	return Dimension[T]{Unavailable: reason}
}

// OK reports whether the dimension was computed.
func (d Dimension[T]) OK() bool {
	return d.Data != nil
}
