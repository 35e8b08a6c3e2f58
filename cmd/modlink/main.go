// Command modlink is a small CLI over the module-loading runtime: point
// it at a directory of XML module descriptors and it builds a registry
// backed by that directory, then lets you load a module, print its
// linked dependency/export graph, resolve a symbol or resource against
// it, or poke at all of that interactively.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aloubyansky/jboss-modules/internal/modconfig"
	"github.com/aloubyansky/jboss-modules/internal/modlog"
	"github.com/aloubyansky/jboss-modules/internal/registry"
)

var (
	descriptorDir string
	configPath    string
	verbose       bool
)

func main() {
	root := &cobra.Command{
		Use:           "modlink",
		Short:         "Inspect and query a module dependency graph",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&descriptorDir, "dir", ".", "directory of XML module descriptors")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a modconfig YAML file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(loadCmd(), graphCmd(), resolveCmd(), replCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRegistry() (*registry.Registry, error) {
	cfg := modconfig.Default()
	if configPath != "" {
		var err error
		cfg, err = modconfig.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := newLogger(level)

	idx, err := scanDescriptors(append([]string{descriptorDir}, cfg.SearchRoots...)...)
	if err != nil {
		return nil, err
	}

	return registry.New(idx.findFunc(), cfg.AllowRedefine, logger), nil
}

func newLogger(level string) modlog.Logger {
	if level == "" {
		return modlog.NoOp()
	}
	return modlog.New(os.Stdout)
}
