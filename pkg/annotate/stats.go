package annotate

import "go.uber.org/zap"

// Outcome is the result of processing a single file
type Outcome struct {
	Path     string
	Skipped  bool
	Updated  bool
	NoSchema bool
	Err      error
}

// Stats counts outcomes over a run. The counters are not exclusive: a file
// without a schema mapping that had its separator fixed is both updated and
// counted under NoSchema. A failed file only counts as an error.
type Stats struct {
	Updated  int
	Skipped  int
	NoSchema int
	Errors   int
}

// Add folds an outcome into the counters
func (s *Stats) Add(o Outcome) {
	if o.Err != nil {
		s.Errors++
		return
	}
	if o.Skipped {
		s.Skipped++
	}
	if o.Updated {
		s.Updated++
	}
	if o.NoSchema {
		s.NoSchema++
	}
}

// Log prints the run summary
func (s Stats) Log(logger *zap.Logger) {
	logger.Info("=== Summary ===")
	logger.Info("Files updated", zap.Int("count", s.Updated))
	logger.Info("Files skipped (already have schema)", zap.Int("count", s.Skipped))
	logger.Info("Files without schema mapping", zap.Int("count", s.NoSchema))
	logger.Info("Errors", zap.Int("count", s.Errors))
}
