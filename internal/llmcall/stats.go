package llmcall

import "sort"

// Stats aggregates latency and token usage over a set of calls.
type Stats struct {
	Count        int `json:"count"`
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`

	// Latency percentiles (milliseconds)
	LatencyP50 float64 `json:"latency_p50_ms"`
	LatencyP95 float64 `json:"latency_p95_ms"`
	LatencyP99 float64 `json:"latency_p99_ms"`
	LatencyAvg float64 `json:"latency_avg_ms"`
	LatencyMin float64 `json:"latency_min_ms"`
	LatencyMax float64 `json:"latency_max_ms"`

	// Token stats
	TotalInputTokens  int     `json:"total_input_tokens"`
	TotalOutputTokens int     `json:"total_output_tokens"`
	AvgInputTokens    float64 `json:"avg_input_tokens"`
	AvgOutputTokens   float64 `json:"avg_output_tokens"`
}

// Grouping names accepted by StatsBy.
const (
	GroupByProvider  = "provider"
	GroupByModel     = "model"
	GroupByForm      = "form"
	GroupByPromptKey = "prompt_key"
)

// GroupKey returns the key function for a grouping name.
func GroupKey(name string) (func(Call) string, bool) {
	switch name {
	case GroupByProvider:
		return func(c Call) string { return c.Provider }, true
	case GroupByModel:
		return func(c Call) string { return c.Model }, true
	case GroupByForm:
		return func(c Call) string { return c.FormID }, true
	case GroupByPromptKey:
		return func(c Call) string { return c.PromptKey }, true
	}
	return nil, false
}

// Stats aggregates every call matching filter. Limit and Offset are ignored.
func (s *Store) Stats(filter QueryFilter) *Stats {
	return computeStats(s.matching(filter))
}

// StatsBy aggregates the calls matching filter per group key.
func (s *Store) StatsBy(filter QueryFilter, key func(Call) string) map[string]*Stats {
	groups := make(map[string][]Call)
	for _, c := range s.matching(filter) {
		k := key(c)
		groups[k] = append(groups[k], c)
	}
	out := make(map[string]*Stats, len(groups))
	for k, calls := range groups {
		out[k] = computeStats(calls)
	}
	return out
}

func (s *Store) matching(filter QueryFilter) []Call {
	filter.Limit, filter.Offset = 0, 0
	calls, _ := s.List(filter)
	return calls
}

func computeStats(calls []Call) *Stats {
	stats := &Stats{Count: len(calls)}
	if len(calls) == 0 {
		return stats
	}

	var latencies []float64
	for _, c := range calls {
		if c.Success {
			stats.SuccessCount++
		} else {
			stats.ErrorCount++
		}
		stats.TotalInputTokens += c.InputTokens
		stats.TotalOutputTokens += c.OutputTokens
		if c.LatencyMs > 0 {
			latencies = append(latencies, float64(c.LatencyMs))
		}
	}

	count := float64(stats.Count)
	stats.AvgInputTokens = float64(stats.TotalInputTokens) / count
	stats.AvgOutputTokens = float64(stats.TotalOutputTokens) / count

	if len(latencies) > 0 {
		sort.Float64s(latencies)
		stats.LatencyMin = latencies[0]
		stats.LatencyMax = latencies[len(latencies)-1]

		var sum float64
		for _, l := range latencies {
			sum += l
		}
		stats.LatencyAvg = sum / float64(len(latencies))

		stats.LatencyP50 = percentile(latencies, 50)
		stats.LatencyP95 = percentile(latencies, 95)
		stats.LatencyP99 = percentile(latencies, 99)
	}
	return stats
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	idx := (p / 100.0) * float64(len(sorted)-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
