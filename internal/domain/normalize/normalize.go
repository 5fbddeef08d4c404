// Package normalize rescales a batch of metric vectors into [0,1] per field.
package normalize

import "github.com/okian/chemdraft/internal/domain/model"

// Batch returns min-max rescaled copies of vs. Each field is scaled over the
// whole batch and rounded to two decimals; a field whose values are all equal
// scales to 0. An empty batch yields an empty, non-nil slice.
func Batch(vs []model.MetricVector) []model.MetricVector {
	out := make([]model.MetricVector, len(vs))
	if len(vs) == 0 {
		return out
	}
	for _, m := range model.Metrics {
		lo, hi := bounds(vs, m)
		for i := range vs {
			v := *m.Ref(&vs[i])
			*m.Ref(&out[i]) = scale(v, lo, hi)
		}
	}
	return out
}

func bounds(vs []model.MetricVector, m model.Metric) (lo, hi float64) {
	lo = *m.Ref(&vs[0])
	hi = lo
	for i := 1; i < len(vs); i++ {
		v := *m.Ref(&vs[i])
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func scale(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return model.Round2((v - lo) / (hi - lo))
}
