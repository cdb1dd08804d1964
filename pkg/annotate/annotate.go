// Package annotate adds yaml-language-server schema annotations and document
// separators to YAML files in place.
package annotate

import (
	"context"
	"path/filepath"

	"github.com/dippynark/kschema/pkg/classify"
	"github.com/dippynark/kschema/pkg/discovery"
	"github.com/dippynark/kschema/pkg/schemas"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Annotator processes files on a filesystem. It holds no per-run state, so
// files may be processed concurrently.
type Annotator struct {
	fs           afero.Fs
	resolver     schemas.Resolver
	skipPatterns []string
	logger       *zap.Logger
}

func New(fs afero.Fs, resolver schemas.Resolver, skipPatterns []string, logger *zap.Logger) *Annotator {
	return &Annotator{
		fs:           fs,
		resolver:     resolver,
		skipPatterns: skipPatterns,
		logger:       logger,
	}
}

// Run processes paths using up to workers goroutines. Outcomes are folded into
// the returned Stats in path order. Files not yet started when ctx is
// cancelled are left untouched and not counted.
func (a *Annotator) Run(ctx context.Context, paths []string, workers int) (Stats, error) {
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]*Outcome, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome := a.ProcessFile(path)
			outcomes[i] = &outcome
			return nil
		})
	}
	// Workers never return errors
	_ = g.Wait()

	var stats Stats
	for _, outcome := range outcomes {
		if outcome != nil {
			stats.Add(*outcome)
		}
	}

	return stats, ctx.Err()
}

// ProcessFile annotates a single file
func (a *Annotator) ProcessFile(path string) Outcome {
	logger := a.logger.With(zap.String("path", path))

	if discovery.IsSkipped(path, a.skipPatterns) {
		logger.Debug("Skipping file")
		return Outcome{Path: path, Skipped: true}
	}

	content, err := afero.ReadFile(a.fs, path)
	if err != nil {
		logger.Error("Failed to read file", zap.Error(err))
		return Outcome{Path: path, Err: err}
	}

	// Existing annotations are never changed
	if classify.HasAnnotation(content) {
		updated, err := a.ensureSeparator(logger, path, content)
		if err != nil {
			return Outcome{Path: path, Err: err}
		}
		return Outcome{Path: path, Updated: updated, Skipped: !updated}
	}

	resource := classify.Classify(content)
	url := a.resolver.Resolve(resource, filepath.Base(path))
	if url != "" {
		err := WriteFile(a.fs, path, InsertAnnotation(content, url))
		if err != nil {
			logger.Error("Failed to add schema", zap.Error(err))
			return Outcome{Path: path, Err: err}
		}
		logger.Info("Added schema", zap.String("schema", url))
		return Outcome{Path: path, Updated: true}
	}

	if resource != nil {
		logger.Warn("No schema mapping", zap.String("apiVersion", resource.APIVersion), zap.String("kind", resource.Kind))
	} else {
		logger.Debug("No resource type found")
	}

	updated, err := a.ensureSeparator(logger, path, content)
	if err != nil {
		return Outcome{Path: path, Err: err}
	}
	return Outcome{Path: path, Updated: updated, NoSchema: true}
}

func (a *Annotator) ensureSeparator(logger *zap.Logger, path string, content []byte) (bool, error) {
	newContent, changed := EnsureSeparator(content)
	if !changed {
		return false, nil
	}

	err := WriteFile(a.fs, path, newContent)
	if err != nil {
		logger.Error("Failed to add --- separator", zap.Error(err))
		return false, err
	}
	logger.Info("Added --- separator")
	return true, nil
}
