package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"visibility-mapper/internal/codec"
)

func roundtrip(cfg *RoundtripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Roundtrip.Parse(cc, args)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("%w: roundtrip requires a type name", cli.ErrUsage)
	}

	reg, m, _, err := cfg.setup()
	if err != nil {
		return err
	}

	d, err := reg.LookupName(args[0])
	if err != nil {
		return err
	}

	text, err := recordText(cc, args[1:])
	if err != nil {
		return err
	}

	inst, err := m.Deserialize(text, d)
	if err != nil {
		return err
	}

	out, err := m.Encode(inst, d)
	if err != nil {
		return err
	}

	if writeRoundtrip(cc.Out, m.Codec().Format(), text, out, isTerminal(cc.Out)) {
		return cli.ExitCodeErr(1)
	}

	return nil
}

// writeRoundtrip prints the output record and, when it differs from the
// input, a character diff. It reports whether they differ.
func writeRoundtrip(w io.Writer, format codec.Format, in, out []byte, colored bool) bool {
	show := func(b []byte) string {
		if format == codec.FormatJSON {
			return string(bytes.TrimSpace(b))
		}

		return hex.EncodeToString(b)
	}

	from, to := show(in), show(out)
	fmt.Fprintln(w, to)

	if from == to {
		return false
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	if colored {
		fmt.Fprintln(w, dmp.DiffPrettyText(diffs))

		return true
	}

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(w, "- %s\n", diff.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(w, "+ %s\n", diff.Text)
		case diffmatchpatch.DiffEqual:
		}
	}

	return true
}
