package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/compdata/derive"
	"github.com/npillmayer/compdata/sig"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	if err := rootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func rootCmd() *cobra.Command {
	var tlevel string
	root := &cobra.Command{
		Use:           "cdtgen",
		Short:         "Generate code for compositional data types",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			tracer().SetTraceLevel(traceLevel(tlevel))
			tracer().Infof("Trace level is %s", tlevel)
		},
	}
	root.PersistentFlags().StringVarP(&tlevel, "trace", "t", "Error", "Trace level [Debug|Info|Error]")
	root.AddCommand(genCmd(), listCmd())
	return root
}

// genOptions are the flags of command gen.
type genOptions struct {
	out   string   // output file, "-" for stdout
	caps  string   // capabilities to derive
	kinds []string // restrict derivation to these node-kinds
}

func genCmd() *cobra.Command {
	var opts genOptions
	cmd := &cobra.Command{
		Use:   "gen <file.go>",
		Short: "Generate node-kind registrations and derived capabilities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := generate(args[0], nil, opts)
			if err != nil {
				return err
			}
			out := opts.out
			if out == "" {
				out = strings.TrimSuffix(args[0], ".go") + "_cdt.go"
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err = os.WriteFile(out, src, 0644); err != nil {
				return errors.Wrapf(err, "writing %s", out)
			}
			pterm.Info.Printf("wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default <file>_cdt.go, - for stdout)")
	cmd.Flags().StringVar(&opts.caps, "derive", "all", "Capabilities to derive [eq,ord,show,functor,cons|all]")
	cmd.Flags().StringSliceVar(&opts.kinds, "kind", nil, "Node-kinds to derive for (default all)")
	return cmd
}

// generate loads node-kind declarations from a Go source file and derives
// capabilities for them. src is handed to derive.LoadDecls.
func generate(filename string, src interface{}, opts genOptions) ([]byte, error) {
	decls, err := derive.LoadDecls(filename, src)
	if err != nil {
		return nil, err
	}
	if len(decls.Kinds) == 0 {
		return nil, errors.Errorf("no node-kind declarations in %s", filename)
	}
	caps, err := derive.ParseCaps(opts.caps)
	if err != nil {
		return nil, err
	}
	reg := sig.NewRegistry()
	if err = decls.Register(reg); err != nil {
		return nil, err
	}
	d := derive.NewDeriver(decls.Package, reg)
	d.Imports = decls.Imports
	kinds := opts.kinds
	if len(kinds) == 0 {
		for _, k := range decls.Kinds {
			kinds = append(kinds, k.Name)
		}
	}
	for _, name := range kinds {
		if err = d.Derive(name, caps...); err != nil {
			return nil, err
		}
	}
	d.Dump()
	return d.Generate()
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file.go>",
		Short: "List node-kinds declared in a Go source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decls, err := derive.LoadDecls(args[0], nil)
			if err != nil {
				return err
			}
			pterm.Println(fmt.Sprintf("package %s", decls.Package))
			pterm.DefaultTree.WithRoot(kindTree(decls)).Render()
			return nil
		},
	}
}

// kindTree lists node-kinds with their constructors, one level each.
func kindTree(decls *derive.Decls) pterm.TreeNode {
	ll := pterm.LeveledList{}
	for _, k := range decls.Kinds {
		label := k.Name
		if k.IsIndexed() {
			label += " (indexed)"
		}
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: label})
		for _, c := range k.Constructors() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: c.String()})
		}
	}
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
