package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "lsxtool").
		WithSynopsis("lsxtool [opts] command [opts]").
		WithDescription("lsxtool decodes LSX resource documents into typed node trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return lsxMain(cfg, cc, args)
		}).
		WithSubs(
			DecodeCommand(cfg),
			FindCommand(cfg),
			QueryCommand(cfg),
			DiffCommand(cfg),
			TypesCommand(cfg))
}

func lsxMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.load(); err != nil {
		return err
	}
	defer func() { _ = cfg.log.Sync() }()
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
		} else {
			defer agent.Close()
		}
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// interruptible returns a context cancelled on SIGINT.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func DecodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DecodeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("decode").
		WithAliases("d", "dec").
		WithSynopsis("decode [-format f] [-section s] file").
		WithDescription("decode every node of every region and print it").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return decode(cfg, cc, args)
		})
	cfg.Decode = cmd
	return cmd
}

func decode(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
	if err != nil {
		cfg.Decode.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: decode requires 1 file argument, got %v", cli.ErrUsage, args)
	}
	s, err := cfg.session(cc.Out)
	if err != nil {
		return err
	}
	ctx, stop := interruptible()
	defer stop()
	return s.decode(ctx, cc.Out, cc.In, args[0], cfg.Section, cfg.Format)
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("find").
		WithAliases("f").
		WithSynopsis("find (-section s -key k | -profile p) value file").
		WithDescription("print the first node whose key attribute has the given value").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
	cfg.Find = cmd
	return cmd
}

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: find requires a value and a file, got %v", cli.ErrUsage, args)
	}
	section, key, err := lookup(cfg.settingsOrDefault(), cfg.Profile, cfg.Section, cfg.Key)
	if err != nil {
		return err
	}
	s, err := cfg.session(cc.Out)
	if err != nil {
		return err
	}
	format, err := s.format(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ctx, stop := interruptible()
	defer stop()
	n, err := s.find(ctx, cc.In, args[1], section, key, args[0])
	if err != nil {
		return err
	}
	if n == nil {
		fmt.Fprintf(os.Stderr, "no node with %s=%q in %s\n", key, args[0], section)
		return cli.ExitCodeErr(1)
	}
	return writeNodes(cc.Out, s, format, n)
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("query").
		WithAliases("q").
		WithSynopsis("query -section s -where expr file").
		WithDescription("print every node of a region accepted by an expr predicate").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return queryCmd(cfg, cc, args)
		})
	cfg.Query = cmd
	return cmd
}

func queryCmd(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: query requires 1 file argument, got %v", cli.ErrUsage, args)
	}
	if cfg.Section == "" || cfg.Where == "" {
		return fmt.Errorf("%w: -section and -where are required", cli.ErrUsage)
	}
	s, err := cfg.session(cc.Out)
	if err != nil {
		return err
	}
	ctx, stop := interruptible()
	defer stop()
	n, err := s.query(ctx, cc.Out, cc.In, args[0], cfg.Section, cfg.Where, cfg.Format)
	if err != nil {
		return err
	}
	if n == 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithSynopsis("diff (-section s -key k | -profile p) value fileA fileB (one file may be -)").
		WithDescription("compare the keyed node across two documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: diff requires a value and 2 files, got %v", cli.ErrUsage, args)
	}
	section, key, err := lookup(cfg.settingsOrDefault(), cfg.Profile, cfg.Section, cfg.Key)
	if err != nil {
		return err
	}
	s, err := cfg.session(cc.Out)
	if err != nil {
		return err
	}
	ctx, stop := interruptible()
	defer stop()
	changed, err := s.diff(ctx, cc.Out, cc.In, section, key, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if changed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func TypesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TypesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Types, "types").
		WithAliases("t").
		WithSynopsis("types").
		WithDescription("list the type ordinal table, including configured ordinals").
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Types.Parse(cc, args)
			if err != nil {
				cfg.Types.Usage(cc, err)
				return cli.ExitCodeErr(1)
			}
			if len(args) != 0 {
				return fmt.Errorf("%w: types takes no arguments", cli.ErrUsage)
			}
			s, err := cfg.session(cc.Out)
			if err != nil {
				return err
			}
			return s.types(cc.Out)
		})
}
