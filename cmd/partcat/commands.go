package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "partcat").
		WithSynopsis("partcat [opts] command [opts]").
		WithDescription(mainDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return partcatMain(cfg, cc, args)
		}).
		WithSubs(
			ShowCommand(cfg),
			LoadCommand(cfg),
			DiffCommand(cfg),
			DownloadCommand(cfg),
			ProcessCommand(cfg),
			ReorganizeCommand(cfg),
			SearchCommand(cfg),
			ValidateCommand(cfg),
			SessionCommand(cfg))
}

const mainDescription = `partcat is a tool for working with parts catalogs.

A session file (partcat.yaml) names the collections to work on:

  collections:
  - name: Digi-Key
    root: catalogs/digikey     # directories and <table>.xml files
    searches: searches/digikey # saved searches
    csvs: csvs/digikey         # downloaded samples
    base: https://www.digikey.com
  fetch:
    delay: 2s
    timeout: 30s
  log:
    level: info

Commands work on the first collection unless -C names another one.`

func ShowCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShowConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Show, "show").
		WithAliases("sh").
		WithSynopsis("show [-full] [-sort name|collated [-lang tag]] [dir ... [table]]").
		WithDescription("show the tree of a collection, or of the node at the given path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return show(cfg, cc, args)
		})
}

func LoadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LoadConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Load, "load").
		WithAliases("l").
		WithSynopsis("load [-partial] [-x]").
		WithDescription("load a collection and report what it holds").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return load(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-a] [collection collection]").
		WithDescription("diff the partial and full loads of a collection, or the trees of two collections").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func DownloadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DownloadConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Download, "download").
		WithAliases("dl").
		WithSynopsis("download").
		WithDescription("download the missing csv samples of a collection").
		WithRun(func(cc *cli.Context, args []string) error {
			return download(cfg, cc, args)
		})
}

func ProcessCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ProcessConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Process, "process").
		WithAliases("p").
		WithSynopsis("process [-bind]").
		WithDescription("infer the parameters of every table with a csv sample").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return process(cfg, cc, args)
		})
}

func ReorganizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReorganizeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Reorganize, "reorganize").
		WithAliases("reorg").
		WithSynopsis("reorganize [-n]").
		WithDescription("group tables titled 'prefix - suffix' into directories").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return reorganize(cfg, cc, args)
		})
}

func SearchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SearchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Search, "search").
		WithAliases("q").
		WithSynopsis("search [-f filter] [-save] <search> dir ... table").
		WithDescription("run a search over the csv sample of a table").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return searchTable(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v").
		WithSynopsis("validate").
		WithDescription("load a collection fully and check its structure").
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func SessionCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SessionConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.SessionCmd, "session").
		WithSynopsis("session").
		WithDescription("print the session in effect").
		WithRun(func(cc *cli.Context, args []string) error {
			return session(cfg, cc, args)
		})
}
