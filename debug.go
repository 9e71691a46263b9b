package dial

// debugLogTick logs scheduler counters for one tick. Only active when
// SessionConfig.Debug is set; idle ticks are not logged.
func (s *Session) debugLogTick(stats TickStats, inv Invalidation) {
	if !s.cfg.Debug || stats.Ticked == 0 {
		return
	}
	s.logger.Debug("tick",
		"now", s.nowMs,
		"clips", stats.Ticked,
		"rendered", stats.Rendered,
		"skipped", stats.Skipped,
		"looped", stats.Looped,
		"ended", stats.Ended,
		"full", inv.Full,
		"dirty", inv.HasDirty)
	if stats.Skipped > 0 {
		s.logger.Warn("frames skipped by catch-up",
			"skipped", stats.Skipped, "state", s.state)
	}
}
