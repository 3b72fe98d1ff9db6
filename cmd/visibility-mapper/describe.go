package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/scott-cotton/cli"

	"visibility-mapper/internal/descriptor"
	"visibility-mapper/internal/diagnostic"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                4,
}

func describe(cfg *DescribeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Describe.Parse(cc, args)
	if err != nil {
		return err
	}

	reg, _, file, err := cfg.setup()
	if err != nil {
		return err
	}

	descs := reg.Descriptors()
	if len(args) > 0 {
		descs = descs[:0]

		for _, name := range args {
			d, err := reg.LookupName(name)
			if err != nil {
				return err
			}

			descs = append(descs, d)
		}
	}

	if cfg.Debug {
		for _, d := range descs {
			dumper.Fdump(cc.Out, d)
		}

		return nil
	}

	pal := newPalette(isTerminal(cc.Out))
	for i, d := range descs {
		if i > 0 {
			fmt.Fprintln(cc.Out)
		}

		if err := writeDescription(cc.Out, d, file.Mapper.RevealPrivateFields, pal); err != nil {
			return err
		}
	}

	return nil
}

// writeDescription prints one type: its construction path, a table of keys
// and the diagnostics Explain reports.
func writeDescription(w io.Writer, d *descriptor.TypeDescriptor, reveal bool, pal palette) error {
	construct := pal.good("constructible")
	if !d.CanConstruct() {
		construct = pal.bad("not constructible")
	}

	fmt.Fprintf(w, "%s  %s, %s\n", pal.header("%s", d.Name()), d.Strategy, construct)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, pal.faint("KEY\tFIELD\tVISIBILITY\tWRITE\tREAD"))

	for i := range d.Fields {
		f := &d.Fields[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Key, f.GoName, f.Visibility,
			accessCell(d.WriteAccess(f, reveal), pal), accessCell(d.ReadAccess(f, reveal), pal))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	diags := descriptor.Explain(d, reveal)
	for _, diag := range diags.All() {
		fmt.Fprintln(w, "  "+severityCell(diag, pal))
	}

	return nil
}

func accessCell(a descriptor.Access, pal palette) string {
	switch a {
	case descriptor.AccessNone:
		return pal.bad("%s", a)
	case descriptor.AccessRevealed:
		return pal.warn("%s", a)
	default:
		return a.String()
	}
}

func severityCell(diag diagnostic.Diagnostic, pal palette) string {
	switch diag.Severity {
	case diagnostic.SeverityError:
		return pal.bad("%s", diag)
	case diagnostic.SeverityWarning:
		return pal.warn("%s", diag)
	default:
		return pal.faint("%s", diag)
	}
}
