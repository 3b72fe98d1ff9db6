package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"visibility-mapper/internal/analyze"
)

func inspect(cfg *InspectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Inspect.Parse(cc, args)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("%w: inspect requires a package pattern", cli.ErrUsage)
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(args...)
	if err != nil {
		return err
	}

	writeProposals(cc.Out, graph.Proposals(), newPalette(isTerminal(cc.Out)))

	return nil
}

func writeProposals(w io.Writer, proposals []analyze.Proposal, pal palette) {
	for _, p := range proposals {
		fmt.Fprintf(w, "%s  %s", pal.header("%s", p.ID), p.Strategy)

		switch {
		case p.Constructor != "":
			fmt.Fprintf(w, "  WithConstructor(%s, ...)", p.Constructor)
		case p.Builder != "":
			fmt.Fprintf(w, "  WithBuilder(%s)", p.Builder)
		}

		fmt.Fprintln(w)

		for _, diag := range p.Diagnostics.All() {
			fmt.Fprintln(w, "  "+severityCell(diag, pal))
		}
	}
}
