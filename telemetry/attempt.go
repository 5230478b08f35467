// Package telemetry records generation attempts and aggregates batch
// statistics for the binaries.
package telemetry

import "log/slog"

// AttemptRecord captures one orchestrator attempt: which strategy ran,
// what the validator said, and the measured dynamics.
type AttemptRecord struct {
	Batch    int    `csv:"batch"`
	Attempt  int    `csv:"attempt"`
	Strategy string `csv:"strategy"`
	Detail   string `csv:"detail"`
	Accepted bool   `csv:"accepted"`
	Stage    string `csv:"stage"`
	Reason   string `csv:"reason"`

	States int `csv:"states"`
	Colors int `csv:"colors"`

	WriteChange float64 `csv:"write_change"`
	Turning     float64 `csv:"turning"`
	SelfState   float64 `csv:"self_state"`

	Changed    int `csv:"changed"`
	Late       int `csv:"late"`
	TailChange int `csv:"tail_change"`
	Painted    int `csv:"painted"`
	ColorsSeen int `csv:"colors_seen"`
}

// LogValue implements slog.LogValuer for structured logging.
func (a AttemptRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("batch", a.Batch),
		slog.Int("attempt", a.Attempt),
		slog.String("strategy", a.Strategy),
		slog.String("detail", a.Detail),
		slog.Bool("accepted", a.Accepted),
		slog.String("stage", a.Stage),
		slog.String("reason", a.Reason),
		slog.Int("states", a.States),
		slog.Int("colors", a.Colors),
		slog.Float64("write_change", a.WriteChange),
		slog.Float64("turning", a.Turning),
		slog.Float64("self_state", a.SelfState),
		slog.Int("changed", a.Changed),
		slog.Int("late", a.Late),
		slog.Int("tail_change", a.TailChange),
		slog.Int("painted", a.Painted),
		slog.Int("colors_seen", a.ColorsSeen),
	)
}
