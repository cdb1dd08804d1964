package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set to `git describe --tags`
var version = "v0.0.0"

const (
	defaultRepoRoot = "."
	defaultWorkers  = 1
)

func main() {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "kschema",
		Short: "kschema adds yaml-language-server schema annotations to Kubernetes and Talos manifests.",
		Run: func(cmd *cobra.Command, args []string) {
			err := o.run(cmd.Context())
			if err != nil {
				fmt.Fprintf(os.Stderr, "kschema: %s\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolP("help", "h", false, "Print help text")
	cmd.Flags().BoolVarP(&o.version, "version", "v", false, "Print version")
	cmd.Flags().StringVarP(&o.repoRoot, "repo-root", "r", defaultRepoRoot, "Repository containing the kubernetes and talos directories")
	cmd.Flags().IntVarP(&o.workers, "workers", "w", defaultWorkers, "Number of files to process concurrently. Log order is only deterministic with a single worker")
	cmd.Flags().BoolVar(&o.verbose, "verbose", false, "Log skipped files and files without a resource type")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
