package main

import (
	"fmt"
	"strings"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/config"
	"github.com/signadot/partcat/debug"
	"github.com/signadot/partcat/store"

	"github.com/scott-cotton/cli"
)

func (cfg *MainConfig) collection() (*config.Collection, error) {
	if cfg.Collection != "" {
		coll, err := cfg.Config.Collection(cfg.Collection)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		return coll, nil
	}
	if len(cfg.Config.Collections) == 0 {
		return nil, fmt.Errorf("%w: the session has no collections", cli.ErrUsage)
	}
	return &cfg.Config.Collections[0], nil
}

func (cfg *MainConfig) loadNamed(name string, partial bool) (*catalog.Collection, *config.Collection, error) {
	coll, err := cfg.Config.Collection(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return cfg.loadColl(coll, partial)
}

func (cfg *MainConfig) load(partial bool) (*catalog.Collection, *config.Collection, error) {
	coll, err := cfg.collection()
	if err != nil {
		return nil, nil, err
	}
	return cfg.loadColl(coll, partial)
}

func (cfg *MainConfig) loadColl(coll *config.Collection, partial bool) (*catalog.Collection, *config.Collection, error) {
	c, err := store.LoadCollection(cfg.Registry, coll.Name, coll.Root, coll.Searches, partial)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load %s: %w", coll.Name, err)
	}
	catalog.CheckInvariants(c, debug.Logger())
	theLog.Debug("loaded collection", "name", coll.Name, "key", c.Key(), "partial", partial)
	return c, coll, nil
}

// find walks down from c by child names. Tables are materialized on the
// way.
func find(c *catalog.Collection, path []string) (catalog.Node, error) {
	var n catalog.Node = c
	for i, name := range path {
		var next catalog.Node
		for _, child := range n.Children() {
			if child.Name() == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %q not found", catalog.ErrNotFound, strings.Join(path[:i+1], "/"))
		}
		if t, ok := next.(*catalog.Table); ok {
			if err := store.Materialize(t); err != nil {
				return nil, err
			}
		}
		n = next
	}
	return n, nil
}

func session(cfg *SessionConfig, cc *cli.Context, args []string) error {
	args, err := cfg.SessionCmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: session takes no arguments", cli.ErrUsage)
	}
	d, err := cfg.Config.Marshal()
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}
