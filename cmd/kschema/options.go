package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dippynark/kschema/pkg/annotate"
	"github.com/dippynark/kschema/pkg/discovery"
	"github.com/dippynark/kschema/pkg/schemas"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type options struct {
	repoRoot string
	workers  int
	verbose  bool
	version  bool
}

func (o *options) run(ctx context.Context) error {

	if o.version {
		fmt.Println(version)
		return nil
	}

	err := o.validate(afero.NewOsFs())
	if err != nil {
		return err
	}

	logger := newLogger(o.verbose, os.Stderr)
	defer func() {
		_ = logger.Sync()
	}()

	// BasePathFs rejects relative names under a relative base such as "."
	repoRoot, err := filepath.Abs(o.repoRoot)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve repository root %s", o.repoRoot)
	}

	// Abstract away from the filesystem: https://github.com/spf13/afero
	// Paths are relative to the repository root from here on
	_, err = o.annotate(ctx, afero.NewBasePathFs(afero.NewOsFs(), repoRoot), logger)
	return err
}

func (o *options) validate(fs afero.Fs) error {
	if o.repoRoot == "" {
		return errors.Errorf("repository root not specified")
	}
	isDir, err := afero.IsDir(fs, o.repoRoot)
	if err != nil {
		return errors.Wrapf(err, "failed to read repository root %s", o.repoRoot)
	}
	if !isDir {
		return errors.Errorf("%s is not a directory", o.repoRoot)
	}
	if o.workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", o.workers)
	}
	return nil
}

// annotate adds schema annotations to every YAML file under the default roots.
// Per-file failures are logged and counted but do not fail the run.
func (o *options) annotate(ctx context.Context, fs afero.Fs, logger *zap.Logger) (annotate.Stats, error) {
	logger.Info("Starting YAML schema addition")

	yamlFiles, err := o.findYAMLFiles(fs, logger)
	if err != nil {
		return annotate.Stats{}, err
	}

	annotator := annotate.New(fs, schemas.NewTableResolver(), discovery.DefaultSkipPatterns, logger)
	stats, err := annotator.Run(ctx, yamlFiles, o.workers)
	if err != nil {
		return stats, errors.Wrap(err, "run interrupted")
	}

	stats.Log(logger)
	return stats, nil
}

func (o *options) findYAMLFiles(fs afero.Fs, logger *zap.Logger) ([]string, error) {
	var yamlFiles []string
	for _, root := range discovery.DefaultRoots {
		exists, err := afero.DirExists(fs, root.Path)
		if err != nil {
			return yamlFiles, errors.Wrapf(err, "failed to read %s", root.Path)
		}
		if !exists {
			logger.Debug("Directory not found", zap.String("path", root.Path))
			continue
		}

		rootFiles, err := discovery.FindYAMLFiles(fs, root)
		if err != nil {
			return yamlFiles, err
		}
		yamlFiles = append(yamlFiles, rootFiles...)
	}
	return yamlFiles, nil
}
