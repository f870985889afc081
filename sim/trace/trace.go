package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelRounds captures every round's vaccination decision.
	TraceLevelRounds TraceLevel = "rounds"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelRounds: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// GameTrace collects round records during a game.
type GameTrace struct {
	Config TraceConfig
	Rounds []RoundRecord
}

// NewGameTrace creates a GameTrace ready for recording, or nil when the
// level disables tracing. Callers pass the nil trace through unchanged.
func NewGameTrace(config TraceConfig) *GameTrace {
	if config.Level == "" || config.Level == TraceLevelNone {
		return nil
	}
	return &GameTrace{
		Config: config,
		Rounds: make([]RoundRecord, 0),
	}
}

// RecordRound appends a round record.
func (gt *GameTrace) RecordRound(record RoundRecord) {
	gt.Rounds = append(gt.Rounds, record)
}
