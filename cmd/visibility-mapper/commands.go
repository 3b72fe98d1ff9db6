package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "visibility-mapper").
		WithSynopsis("visibility-mapper [opts] command [opts]").
		WithDescription("visibility-mapper maps records to structs under field visibility rules.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return vmMain(cfg, cc, args)
		}).
		WithSubs(
			DescribeCommand(cfg),
			DecodeCommand(cfg),
			RoundtripCommand(cfg),
			InspectCommand(cfg))
}

func DescribeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DescribeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Describe, "describe").
		WithAliases("desc").
		WithSynopsis("describe [-debug] [type...]").
		WithDescription("show how each key of the registered types is written and read").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return describe(cfg, cc, args)
		})
}

func DecodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DecodeConfig{MainConfig: mainCfg}

	return cli.NewCommandAt(&cfg.Decode, "decode").
		WithAliases("d").
		WithSynopsis("decode <type> [text]").
		WithDescription("deserialize a record (argument or stdin) and dump the instance").
		WithRun(func(cc *cli.Context, args []string) error {
			return decode(cfg, cc, args)
		})
}

func RoundtripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RoundtripConfig{MainConfig: mainCfg}

	return cli.NewCommandAt(&cfg.Roundtrip, "roundtrip").
		WithAliases("rt").
		WithSynopsis("roundtrip <type> [text]").
		WithDescription("deserialize then serialize a record and diff the result against the input").
		WithRun(func(cc *cli.Context, args []string) error {
			return roundtrip(cfg, cc, args)
		})
}

func InspectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InspectConfig{MainConfig: mainCfg}

	return cli.NewCommandAt(&cfg.Inspect, "inspect").
		WithAliases("i").
		WithSynopsis("inspect <package pattern...>").
		WithDescription("propose registrations for the structs of Go packages").
		WithRun(func(cc *cli.Context, args []string) error {
			return inspect(cfg, cc, args)
		})
}
