package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aloubyansky/jboss-modules/internal/modgraph"
	"github.com/aloubyansky/jboss-modules/internal/modident"
)

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <identifier>",
		Short: "Load a module and its dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry()
			if err != nil {
				return err
			}
			id, err := modident.Parse(args[0])
			if err != nil {
				return err
			}
			mod, found, err := reg.Load(id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s loaded (main: %s)\n", id, orNone(mod.MainSymbol()))
			return nil
		},
	}
}

func graphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <identifier>",
		Short: "Print a loaded module's dependency and export structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry()
			if err != nil {
				return err
			}
			id, err := modident.Parse(args[0])
			if err != nil {
				return err
			}
			mod, found, err := reg.Load(id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", id)
				return nil
			}
			printGraph(cmd.OutOrStdout(), mod)
			return nil
		},
	}
}

func printGraph(w io.Writer, mod *modgraph.Module) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s\n", bold(mod.Identifier().String()))

	deps, err := mod.Dependencies()
	if err != nil {
		fmt.Fprintf(w, "  %s: %v\n", dim("dependencies"), err)
		return
	}
	for _, dep := range deps {
		switch {
		case dep.Silent:
			fmt.Fprintf(w, "  %s %s\n", dim("(optional, missing)"), "")
		case dep.IsLocal():
			fmt.Fprintf(w, "  %s\n", dim("local"))
		default:
			fmt.Fprintf(w, "  -> %s\n", dep.Target.Identifier().String())
		}
	}

	paths := make([]string, 0, len(mod.ExportedPaths()))
	for p := range mod.ExportedPaths() {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	fmt.Fprintf(w, "  %s:\n", dim("exported paths"))
	for _, p := range paths {
		fmt.Fprintf(w, "    %s\n", orRoot(p))
	}
}

func resolveCmd() *cobra.Command {
	var resource, exported, all bool
	cmd := &cobra.Command{
		Use:   "resolve <identifier> <name>",
		Short: "Resolve a symbol or resource against a loaded module",
		Long: `Resolve a dotted symbol name, or (with --resource) a resource path, against
a loaded module's namespace (spec.md §4.5).

By default this walks the module's own dependencies (loadSymbol/
getResource): the same view the module itself has of its imports. With
--exported it instead walks only the module's exportedPaths
(loadExportedSymbol/getExportedResource): the view a consumer of the
module would have. --all enumerates every matching resource
(getResources/getExportedResources) instead of stopping at the first
hit; it is only meaningful together with --resource.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && !resource {
				return fmt.Errorf("--all only applies to --resource lookups")
			}
			reg, err := newRegistry()
			if err != nil {
				return err
			}
			id, err := modident.Parse(args[0])
			if err != nil {
				return err
			}
			mod, found, err := reg.Load(id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", id)
				return nil
			}

			out := cmd.OutOrStdout()
			ns := mod.Namespace()
			switch {
			case resource && all:
				var rs []io.ReadCloser
				if exported {
					rs, err = ns.GetExportedResources(args[1])
				} else {
					rs, err = ns.GetResources(args[1])
				}
				if err != nil {
					return err
				}
				if len(rs) == 0 {
					fmt.Fprintf(out, "%s: not found in %s\n", args[1], id)
					return nil
				}
				for _, rc := range rs {
					if err := printAndClose(out, rc); err != nil {
						return err
					}
				}
				return nil
			case resource:
				var rc io.ReadCloser
				var ok bool
				if exported {
					rc, ok, err = ns.GetExportedResource(args[1])
				} else {
					rc, ok, err = ns.GetResource(args[1])
				}
				return reportSingle(out, args[1], id, rc, ok, err)
			default:
				var rc io.ReadCloser
				var ok bool
				if exported {
					rc, ok, err = ns.LoadExportedSymbol(args[1])
				} else {
					rc, ok, err = ns.LoadSymbol(args[1])
				}
				return reportSingle(out, args[1], id, rc, ok, err)
			}
		},
	}
	cmd.Flags().BoolVar(&resource, "resource", false, "resolve a resource path instead of a dotted symbol")
	cmd.Flags().BoolVar(&exported, "exported", false, "resolve through exportedPaths only (loadExportedSymbol/getExportedResource(s))")
	cmd.Flags().BoolVar(&all, "all", false, "enumerate every matching resource instead of the first (getResources/getExportedResources); requires --resource")
	return cmd
}

func reportSingle(out io.Writer, name string, id modident.ID, rc io.ReadCloser, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(out, "%s: not found in %s\n", name, id)
		return nil
	}
	return printAndClose(out, rc)
}

func printAndClose(out io.Writer, rc io.ReadCloser) error {
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(body))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func orRoot(s string) string {
	if s == "" {
		return "(root)"
	}
	return s
}
