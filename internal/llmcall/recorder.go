package llmcall

import (
	"github.com/jackzampolin/formfill/internal/providers"
)

// Recorder captures LLM calls into a Store. A Recorder with no store is a
// no-op, so callers never need to check.
type Recorder struct {
	store *Store
}

// NewRecorder creates a new LLM call recorder.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

// Record captures an LLM call and returns the stored record.
func (r *Recorder) Record(result *providers.ChatResult, opts RecordOptions) *Call {
	if r == nil || r.store == nil {
		return nil
	}
	call := FromChatResult(result, opts)
	if call == nil {
		return nil
	}
	r.store.Add(*call)
	return call
}

// RecordCall captures an already-constructed Call.
func (r *Recorder) RecordCall(call *Call) {
	if r == nil || r.store == nil || call == nil {
		return
	}
	r.store.Add(*call)
}

// Store returns the backing store, which may be nil.
func (r *Recorder) Store() *Store {
	if r == nil {
		return nil
	}
	return r.store
}
