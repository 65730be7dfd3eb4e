package quality

import "math"

// Stats summarises a set of quality values under one metric.
type Stats struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	// Worst is Min for Angle and Max for AspectRatio.
	Worst float64 `json:"worst"`
}

// Summarize reduces values to Stats. Infinite values (degenerate elements)
// are counted and reach Max/Worst but are excluded from Avg. Empty input
// yields the zero Stats.
func Summarize(m Metric, values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	st := Stats{Count: len(values), Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	var finite int
	for _, v := range values {
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
		if !math.IsInf(v, 0) {
			sum += v
			finite++
		}
	}
	if finite > 0 {
		st.Avg = sum / float64(finite)
	}
	st.Worst = st.Min
	if m == AspectRatio {
		st.Worst = st.Max
	}

	return st
}
