package main

import "math"

// AxisDomain is the numeric range a y-axis is scaled to. Auto marks the
// sentinel [0, auto] range, meaning the rendering library picks its own
// scale; Lower and Upper are only meaningful when Auto is false.
type AxisDomain struct {
	Lower int  `json:"lower"`
	Upper int  `json:"upper"`
	Auto  bool `json:"auto"`
}

// Span returns the width of the domain.
func (d AxisDomain) Span() float64 {
	return float64(d.Upper - d.Lower)
}

// ComputeAxisDomain derives the shared range for one axis from the filtered
// records and the metrics assigned to that axis. The running minimum and
// maximum are tracked jointly across all included metrics, not per metric,
// so every series sharing the axis stays comparable on one scale.
//
// An empty metric subset, or a subset with no present value anywhere in
// the records, yields the [0, auto] sentinel. Otherwise the range is
// padded by 10% of its width, the lower bound floored and clamped at zero
// (all metrics are non-negative), the upper bound ceiled. A single present
// value (or all values equal) gives zero padding and the degenerate
// [v, v] domain.
func ComputeAxisDomain(records []YearRecord, metrics []MetricID) AxisDomain {
	if len(metrics) == 0 {
		return AxisDomain{Lower: 0, Auto: true}
	}

	var (
		minVal, maxVal float64
		found          bool
	)
	for _, r := range records {
		for _, id := range metrics {
			v, ok := r.Value(id)
			if !ok {
				continue
			}
			if !found || v < minVal {
				minVal = v
			}
			if !found || v > maxVal {
				maxVal = v
			}
			found = true
		}
	}
	if !found {
		return AxisDomain{Lower: 0, Auto: true}
	}

	padding := (maxVal - minVal) * 0.1
	lower := math.Floor(minVal - padding)
	if lower < 0 {
		lower = 0
	}
	upper := math.Ceil(maxVal + padding)
	return AxisDomain{Lower: int(lower), Upper: int(upper)}
}

// AxisDomains partitions the selected metrics by their static axis
// assignment and computes both domains, preserving selection order within
// each partition.
func AxisDomains(records []YearRecord, selected []MetricID) (left, right AxisDomain) {
	var leftMetrics, rightMetrics []MetricID
	for _, id := range selected {
		if AxisOf(id) == AxisRight {
			rightMetrics = append(rightMetrics, id)
		} else {
			leftMetrics = append(leftMetrics, id)
		}
	}
	return ComputeAxisDomain(records, leftMetrics), ComputeAxisDomain(records, rightMetrics)
}

// Rescale maps a value from one axis domain into another so series bound
// to different axes can share a single drawing plane. A degenerate source
// domain maps everything to the middle of the target.
func Rescale(v float64, from, to AxisDomain) float64 {
	if from.Span() == 0 {
		return float64(to.Lower) + to.Span()/2
	}
	frac := (v - float64(from.Lower)) / from.Span()
	return float64(to.Lower) + frac*to.Span()
}
