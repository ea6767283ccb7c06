package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/config"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func partcatMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
		}
		defer agent.Close()
	}
	sess, err := loadSession(cfg.Session)
	if err != nil {
		return err
	}
	cfg.Config = sess
	cfg.Registry = catalog.NewRegistry()
	setupLog(cfg, sess)

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

// loadSession reads path, or partcat.yaml when path is empty and that file
// exists. Otherwise the default session is used.
func loadSession(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultSession); err != nil {
			return config.Default(), nil
		}
		path = DefaultSession
	}
	sess, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("could not load session: %w", err)
	}
	return sess, nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
