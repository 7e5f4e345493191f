package blocks

import "time"

// CuePlayer is the boundary to the external audio collaborator. Play is
// fire-and-forget: the cue identifier plus its offset relative to the
// clear that scheduled it. The engine never waits on it.
type CuePlayer interface {
	Play(cue CueID, at time.Duration)
}

// NopCuePlayer discards every cue. Useful for headless play and tests.
type NopCuePlayer struct{}

func (NopCuePlayer) Play(CueID, time.Duration) {}

// RecordingCuePlayer captures cues in order for assertions.
type RecordingCuePlayer struct {
	Events []CueEvent
}

func (r *RecordingCuePlayer) Play(cue CueID, at time.Duration) {
	r.Events = append(r.Events, CueEvent{Cue: cue, At: at})
}
