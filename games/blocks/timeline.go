package blocks

import (
	"sort"
	"time"
)

// CueID names a sound or visual cue for the external cue-player. The
// engine only schedules these; it never plays anything.
type CueID string

const (
	CueClearSingle CueID = "clear-single"
	CueClearDouble CueID = "clear-double"
	CueClearTriple CueID = "clear-triple"
	CueClearQuad   CueID = "clear-quad"
	CueFullBoard   CueID = "full-board"
	CueBeat        CueID = "beat"
	CueLineWave    CueID = "line-wave"
)

// Axis distinguishes row and column line animations.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

// TierTiming is the timing record for one combo tier: when the tier's
// animation starts relative to the clear, how long one cell's animation
// runs, how far apart the per-cell wave steps are, and how many secondary
// beat cues accompany it (quad tier only by default).
type TierTiming struct {
	StartDelay time.Duration
	Duration   time.Duration
	WaveDelay  time.Duration
	BeatCount  int
	Cue        CueID
}

// TimelineConfig holds the per-axis tier tables plus the spacing of
// secondary beat cues. Rows and columns are independently configurable.
type TimelineConfig struct {
	RowTiers     [4]TierTiming
	ColumnTiers  [4]TierTiming
	BeatInterval time.Duration
	FullBoardCue CueID
}

// DefaultTimelineConfig escalates delay and wave speed with the combo
// tier; quads add a four-beat cue sequence.
var DefaultTimelineConfig = TimelineConfig{
	RowTiers: [4]TierTiming{
		{StartDelay: 0, Duration: 250 * time.Millisecond, WaveDelay: 30 * time.Millisecond, Cue: CueClearSingle},
		{StartDelay: 50 * time.Millisecond, Duration: 300 * time.Millisecond, WaveDelay: 35 * time.Millisecond, Cue: CueClearDouble},
		{StartDelay: 100 * time.Millisecond, Duration: 350 * time.Millisecond, WaveDelay: 40 * time.Millisecond, Cue: CueClearTriple},
		{StartDelay: 150 * time.Millisecond, Duration: 400 * time.Millisecond, WaveDelay: 45 * time.Millisecond, BeatCount: 4, Cue: CueClearQuad},
	},
	ColumnTiers: [4]TierTiming{
		{StartDelay: 0, Duration: 250 * time.Millisecond, WaveDelay: 30 * time.Millisecond, Cue: CueClearSingle},
		{StartDelay: 50 * time.Millisecond, Duration: 300 * time.Millisecond, WaveDelay: 35 * time.Millisecond, Cue: CueClearDouble},
		{StartDelay: 100 * time.Millisecond, Duration: 350 * time.Millisecond, WaveDelay: 40 * time.Millisecond, Cue: CueClearTriple},
		{StartDelay: 150 * time.Millisecond, Duration: 400 * time.Millisecond, WaveDelay: 45 * time.Millisecond, BeatCount: 4, Cue: CueClearQuad},
	},
	BeatInterval: 120 * time.Millisecond,
	FullBoardCue: CueFullBoard,
}

// LineAnimation schedules the clearing animation of one full line.
// Start is an offset from the caller's base timestamp; cell k of the
// line begins at Start + k*WaveDelay, so the last of the 10 cells starts
// 9 wave steps in.
type LineAnimation struct {
	Axis      Axis
	Index     int
	Phase     int
	Start     time.Duration
	Duration  time.Duration
	WaveDelay time.Duration
}

// End returns when the line's last cell finishes animating.
func (l LineAnimation) End() time.Duration {
	return l.Start + l.Duration + time.Duration(BoardSize-1)*l.WaveDelay
}

// CueEvent schedules a cue for the external cue-player.
type CueEvent struct {
	Cue CueID
	At  time.Duration
}

// Timeline is the full schedule for one clearing pass: per-line
// animations, companion cues, and the settle time. All offsets are
// relative to the caller-supplied base; nothing here touches a timer.
type Timeline struct {
	Lines []LineAnimation
	Cues  []CueEvent
	End   time.Duration
}

// BuildTimeline computes the animation schedule for a clearing pass.
// Phase one animates the cleared rows and columns by combo tier. When the
// pass emptied the board, a second celebratory phase replays columns and
// then rows, anchored strictly after phase one has fully settled.
func BuildTimeline(clearedRows, clearedCols []int, isFullBoardClear bool, base time.Duration, cfg TimelineConfig) Timeline {
	tl := Timeline{End: base}
	if len(clearedRows) == 0 && len(clearedCols) == 0 {
		return tl
	}

	rows := sortedCopy(clearedRows)
	cols := sortedCopy(clearedCols)

	phase1End := base
	if end := scheduleAxis(&tl, AxisRow, rows, 0, base, cfg.RowTiers, cfg.BeatInterval); end > phase1End {
		phase1End = end
	}
	if end := scheduleAxis(&tl, AxisColumn, cols, 0, base, cfg.ColumnTiers, cfg.BeatInterval); end > phase1End {
		phase1End = end
	}
	tl.End = phase1End

	if isFullBoardClear {
		// Second phase: columns sweep first, rows follow, never
		// overlapping phase one.
		tl.Cues = append(tl.Cues, CueEvent{Cue: cfg.FullBoardCue, At: phase1End})
		colEnd := scheduleAxis(&tl, AxisColumn, cols, 1, phase1End, cfg.ColumnTiers, cfg.BeatInterval)
		rowBase := phase1End
		if colEnd > rowBase {
			rowBase = colEnd
		}
		rowEnd := scheduleAxis(&tl, AxisRow, rows, 1, rowBase, cfg.RowTiers, cfg.BeatInterval)
		tl.End = phase1End
		if colEnd > tl.End {
			tl.End = colEnd
		}
		if rowEnd > tl.End {
			tl.End = rowEnd
		}
	}

	sort.Slice(tl.Cues, func(i, j int) bool { return tl.Cues[i].At < tl.Cues[j].At })
	return tl
}

// scheduleAxis appends the line animations and cues for one axis in one
// phase and returns the phase end for that axis, or the base when the
// axis cleared nothing.
func scheduleAxis(tl *Timeline, axis Axis, lines []int, phase int, base time.Duration, tiers [4]TierTiming, beatInterval time.Duration) time.Duration {
	tier := comboTier(len(lines))
	if tier < 0 {
		return base
	}
	t := tiers[tier]
	start := base + t.StartDelay
	for _, idx := range lines {
		tl.Lines = append(tl.Lines, LineAnimation{
			Axis:      axis,
			Index:     idx,
			Phase:     phase,
			Start:     start,
			Duration:  t.Duration,
			WaveDelay: t.WaveDelay,
		})
	}
	tl.Cues = append(tl.Cues, CueEvent{Cue: t.Cue, At: start})
	for i := 1; i <= t.BeatCount; i++ {
		tl.Cues = append(tl.Cues, CueEvent{Cue: CueBeat, At: start + time.Duration(i)*beatInterval})
	}
	return start + t.Duration + time.Duration(BoardSize-1)*t.WaveDelay
}

func sortedCopy(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	return out
}
