package session

// FeedbackSink receives exactly one notification per committed word with a
// fully-correct signal. Playback (sound, flash) lives outside the core.
type FeedbackSink interface {
	WordCommitted(correct bool)
}

// NopSink discards feedback notifications.
type NopSink struct{}

// WordCommitted implements FeedbackSink.
func (NopSink) WordCommitted(bool) {}
