package llmcall

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackzampolin/formfill/internal/providers"
)

func TestFromChatResult(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		if call := FromChatResult(nil, RecordOptions{}); call != nil {
			t.Errorf("expected nil, got %+v", call)
		}
	})

	t.Run("successful result", func(t *testing.T) {
		temp := 0.3
		result := &providers.ChatResult{
			Content:          `{"name":"Ada"}`,
			PromptTokens:     120,
			CompletionTokens: 8,
			ExecutionTime:    1500 * time.Millisecond,
			Provider:         "openai",
			ModelUsed:        "gpt-4",
			Success:          true,
		}
		call := FromChatResult(result, RecordOptions{
			SessionID:   "s1",
			FormID:      "customer_info",
			PromptKey:   "fill.form.system",
			PromptHash:  "abc",
			Temperature: &temp,
		})
		if call.ID == "" {
			t.Error("expected generated ID")
		}
		if call.LatencyMs != 1500 {
			t.Errorf("LatencyMs = %d, want 1500", call.LatencyMs)
		}
		if call.SessionID != "s1" || call.FormID != "customer_info" {
			t.Errorf("context = %q/%q", call.SessionID, call.FormID)
		}
		if call.InputTokens != 120 || call.OutputTokens != 8 {
			t.Errorf("tokens = %d/%d", call.InputTokens, call.OutputTokens)
		}
		if call.Temperature == nil || *call.Temperature != 0.3 {
			t.Errorf("Temperature = %v", call.Temperature)
		}
		if call.Error != "" {
			t.Errorf("Error = %q, want empty", call.Error)
		}
	})

	t.Run("failed result keeps error", func(t *testing.T) {
		call := FromChatResult(&providers.ChatResult{
			Success:      false,
			ErrorMessage: "rate limited",
		}, RecordOptions{PromptKey: "k"})
		if call.Success {
			t.Error("Success = true, want false")
		}
		if call.Error != "rate limited" {
			t.Errorf("Error = %q", call.Error)
		}
	})
}

func TestStore_Eviction(t *testing.T) {
	s := NewStore(3)
	for i := 0; i < 5; i++ {
		s.Add(Call{ID: fmt.Sprintf("c%d", i)})
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.Get("c0") != nil || s.Get("c1") != nil {
		t.Error("oldest calls should have been evicted")
	}

	calls, total := s.List(QueryFilter{})
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	want := []string{"c4", "c3", "c2"}
	for i, id := range want {
		if calls[i].ID != id {
			t.Errorf("calls[%d].ID = %s, want %s", i, calls[i].ID, id)
		}
	}
}

func TestStore_List(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(0)
	s.Add(Call{ID: "a", FormID: "intake", PromptKey: "fill.wizard.system", Provider: "openai", Success: true, Timestamp: base})
	s.Add(Call{ID: "b", FormID: "customer_info", PromptKey: "fill.form.system", Provider: "gemini", Success: false, Timestamp: base.Add(time.Minute)})
	s.Add(Call{ID: "c", FormID: "customer_info", PromptKey: "fill.form.system", Provider: "openai", Success: true, Timestamp: base.Add(2 * time.Minute)})

	ok := true
	after := base.Add(30 * time.Second)

	tests := []struct {
		name   string
		filter QueryFilter
		want   []string
	}{
		{"all", QueryFilter{}, []string{"c", "b", "a"}},
		{"by form", QueryFilter{FormID: "customer_info"}, []string{"c", "b"}},
		{"by provider", QueryFilter{Provider: "openai"}, []string{"c", "a"}},
		{"by success", QueryFilter{Success: &ok}, []string{"c", "a"}},
		{"after", QueryFilter{After: &after}, []string{"c", "b"}},
		{"limit", QueryFilter{Limit: 1}, []string{"c"}},
		{"offset", QueryFilter{Offset: 2}, []string{"a"}},
		{"offset past end", QueryFilter{Offset: 9}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, _ := s.List(tt.filter)
			if len(calls) != len(tt.want) {
				t.Fatalf("got %d calls, want %d", len(calls), len(tt.want))
			}
			for i, id := range tt.want {
				if calls[i].ID != id {
					t.Errorf("calls[%d].ID = %s, want %s", i, calls[i].ID, id)
				}
			}
		})
	}

	counts := s.CountByPromptKey("")
	if counts["fill.form.system"] != 2 || counts["fill.wizard.system"] != 1 {
		t.Errorf("CountByPromptKey() = %v", counts)
	}
}

func TestRecorder(t *testing.T) {
	t.Run("nil recorder is a no-op", func(t *testing.T) {
		var r *Recorder
		if call := r.Record(&providers.ChatResult{Success: true}, RecordOptions{}); call != nil {
			t.Errorf("expected nil, got %+v", call)
		}
	})

	t.Run("records into store", func(t *testing.T) {
		store := NewStore(10)
		r := NewRecorder(store)
		call := r.Record(&providers.ChatResult{Success: true, Provider: "mock"}, RecordOptions{PromptKey: "k"})
		if call == nil {
			t.Fatal("expected call")
		}
		if got := store.Get(call.ID); got == nil || got.Provider != "mock" {
			t.Errorf("Get() = %+v", got)
		}
	})
}

func TestStore_Stats(t *testing.T) {
	s := NewStore(10)
	calls := []Call{
		{ID: "1", Provider: "openai", FormID: "intake", LatencyMs: 100, InputTokens: 300, OutputTokens: 40, Success: true},
		{ID: "2", Provider: "openai", FormID: "customer_info", LatencyMs: 200, InputTokens: 100, OutputTokens: 20, Success: true},
		{ID: "3", Provider: "gemini", FormID: "intake", LatencyMs: 300, InputTokens: 200, OutputTokens: 0, Success: false},
		{ID: "4", Provider: "gemini", FormID: "intake", Success: false},
	}
	for _, c := range calls {
		s.Add(c)
	}

	t.Run("all", func(t *testing.T) {
		st := s.Stats(QueryFilter{Limit: 1})
		if st.Count != 4 || st.SuccessCount != 2 || st.ErrorCount != 2 {
			t.Errorf("counts = %d/%d/%d", st.Count, st.SuccessCount, st.ErrorCount)
		}
		if st.TotalInputTokens != 600 || st.AvgInputTokens != 150 {
			t.Errorf("input tokens = %d (avg %v)", st.TotalInputTokens, st.AvgInputTokens)
		}
		// The call without latency is left out of the percentiles.
		if st.LatencyMin != 100 || st.LatencyMax != 300 || st.LatencyP50 != 200 || st.LatencyAvg != 200 {
			t.Errorf("latency = %+v", st)
		}
	})

	t.Run("by_provider", func(t *testing.T) {
		key, ok := GroupKey(GroupByProvider)
		if !ok {
			t.Fatal("provider grouping not known")
		}
		groups := s.StatsBy(QueryFilter{FormID: "intake"}, key)
		if len(groups) != 2 {
			t.Fatalf("groups = %v", groups)
		}
		if groups["openai"].Count != 1 || groups["gemini"].Count != 2 {
			t.Errorf("openai = %d, gemini = %d", groups["openai"].Count, groups["gemini"].Count)
		}
	})

	t.Run("empty", func(t *testing.T) {
		st := s.Stats(QueryFilter{Provider: "none"})
		if st.Count != 0 || st.LatencyP99 != 0 {
			t.Errorf("stats = %+v", st)
		}
	})

	if _, ok := GroupKey("colour"); ok {
		t.Error("unknown grouping accepted")
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{50, 30},
		{95, 48},
		{100, 50},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); fmt.Sprintf("%.4f", got) != fmt.Sprintf("%.4f", tt.want) {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
