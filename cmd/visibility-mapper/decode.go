package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func decode(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("%w: decode requires a type name", cli.ErrUsage)
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

	out, err := m.Deserialize(text, d)
	if err != nil {
		return err
	}

	dumper.Fdump(cc.Out, out)

	return nil
}
