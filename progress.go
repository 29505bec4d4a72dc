package ferox

// ProgressSink receives incremental byte-count notifications from the
// encrypt/decrypt streaming loop (spec §4.8). Implementations render bars,
// update counters, or do nothing; the core never formats or writes to
// stdout/stderr itself.
type ProgressSink interface {
	// OnBytes is called once per buffer with the number of bytes processed
	// in that chunk (not the running total).
	OnBytes(n int)
	// OnFinish is called once, after the last buffer, with the total
	// number of plaintext bytes processed. It is not called when the
	// operation fails.
	OnFinish(total int64)
}

// NoopProgress implements ProgressSink by discarding every notification.
// It is the default when a caller passes a nil sink.
type NoopProgress struct{}

func (NoopProgress) OnBytes(int)    {}
func (NoopProgress) OnFinish(int64) {}

func progressOrNoop(p ProgressSink) ProgressSink {
	if p == nil {
		return NoopProgress{}
	}
	return p
}
