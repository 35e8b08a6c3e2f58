package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/aloubyansky/jboss-modules/internal/modgraph"
	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/registry"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively load modules and resolve symbols/resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry()
			if err != nil {
				return err
			}
			return runREPL(reg)
		},
	}
}

// session holds the REPL's loaded-module bindings, addressed by a short
// local name rather than a full identifier.
type session struct {
	reg    *registry.Registry
	loaded map[string]*modgraph.Module
}

func runREPL(reg *registry.Registry) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	sess := &session{reg: reg, loaded: make(map[string]*modgraph.Module)}

	fmt.Println(cyan("modlink repl — type 'help' for commands, 'quit' to exit"))
	for {
		input, err := line.Prompt("modlink> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			printHelp()
		case "load":
			sess.handleLoad(fields, green, red)
		case "graph":
			sess.handleGraph(fields, red)
		case "symbol":
			sess.handleSymbol(fields, red)
		case "resource":
			sess.handleResource(fields, red)
		default:
			fmt.Println(red("unrecognized command:"), fields[0])
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  load <as> <identifier>              load a module, bound to local name <as>
  graph <as>                          print <as>'s dependency/export graph
  symbol <as> <dotted.name> [flags]   resolve a symbol against <as>
  resource <as> <path> [flags]        resolve a resource against <as>
  quit                                exit

flags (symbol and resource):
  --exported   resolve through exportedPaths only (loadExportedSymbol/getExportedResource(s)):
               "what would a consumer of <as> see"
flags (resource only):
  --all        enumerate every matching resource instead of stopping at the first
               (getResources/getExportedResources)`)
}

func (s *session) handleLoad(fields []string, green, red func(a ...interface{}) string) {
	if len(fields) != 3 {
		fmt.Println(red("usage: load <as> <identifier>"))
		return
	}
	id, err := modident.Parse(fields[2])
	if err != nil {
		fmt.Println(red(err.Error()))
		return
	}
	mod, found, err := s.reg.Load(id)
	if err != nil {
		fmt.Println(red(err.Error()))
		return
	}
	if !found {
		fmt.Println(red(fields[2] + ": not found"))
		return
	}
	s.loaded[fields[1]] = mod
	fmt.Println(green(fields[1] + " = " + id.String()))
}

func (s *session) resolveName(as string, red func(a ...interface{}) string) (*modgraph.Module, bool) {
	mod, ok := s.loaded[as]
	if !ok {
		fmt.Println(red(as + ": not loaded (use 'load' first)"))
	}
	return mod, ok
}

func (s *session) handleGraph(fields []string, red func(a ...interface{}) string) {
	if len(fields) != 2 {
		fmt.Println(red("usage: graph <as>"))
		return
	}
	mod, ok := s.resolveName(fields[1], red)
	if !ok {
		return
	}
	printGraph(os.Stdout, mod)
}

// replFlags splits trailing "--flag" tokens out of a command's argument
// list, reporting which recognized flags were present.
func replFlags(rest []string) (exported, all bool, unrecognized []string) {
	for _, f := range rest {
		switch f {
		case "--exported":
			exported = true
		case "--all":
			all = true
		default:
			unrecognized = append(unrecognized, f)
		}
	}
	return exported, all, unrecognized
}

func (s *session) handleSymbol(fields []string, red func(a ...interface{}) string) {
	if len(fields) < 3 {
		fmt.Println(red("usage: symbol <as> <dotted.name> [--exported]"))
		return
	}
	exported, _, bad := replFlags(fields[3:])
	if len(bad) > 0 {
		fmt.Println(red("unrecognized flag(s) for symbol:"), strings.Join(bad, " "))
		return
	}
	mod, ok := s.resolveName(fields[1], red)
	if !ok {
		return
	}
	ns := mod.Namespace()
	var rc io.ReadCloser
	var err error
	if exported {
		rc, ok, err = ns.LoadExportedSymbol(fields[2])
	} else {
		rc, ok, err = ns.LoadSymbol(fields[2])
	}
	if err != nil {
		fmt.Println(red(err.Error()))
		return
	}
	if !ok {
		fmt.Println(red(fields[2] + ": not found"))
		return
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	fmt.Println(string(body))
}

func (s *session) handleResource(fields []string, red func(a ...interface{}) string) {
	if len(fields) < 3 {
		fmt.Println(red("usage: resource <as> <path> [--exported] [--all]"))
		return
	}
	exported, all, bad := replFlags(fields[3:])
	if len(bad) > 0 {
		fmt.Println(red("unrecognized flag(s) for resource:"), strings.Join(bad, " "))
		return
	}
	mod, ok := s.resolveName(fields[1], red)
	if !ok {
		return
	}
	ns := mod.Namespace()

	if all {
		var rs []io.ReadCloser
		var err error
		if exported {
			rs, err = ns.GetExportedResources(fields[2])
		} else {
			rs, err = ns.GetResources(fields[2])
		}
		if err != nil {
			fmt.Println(red(err.Error()))
			return
		}
		if len(rs) == 0 {
			fmt.Println(red(fields[2] + ": not found"))
			return
		}
		for _, rc := range rs {
			body, _ := io.ReadAll(rc)
			rc.Close()
			fmt.Println(string(body))
		}
		return
	}

	var rc io.ReadCloser
	var err error
	if exported {
		rc, ok, err = ns.GetExportedResource(fields[2])
	} else {
		rc, ok, err = ns.GetResource(fields[2])
	}
	if err != nil {
		fmt.Println(red(err.Error()))
		return
	}
	if !ok {
		fmt.Println(red(fields[2] + ": not found"))
		return
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	fmt.Println(string(body))
}
