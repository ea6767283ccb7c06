package main

import (
	"errors"
	"fmt"

	"github.com/signadot/partcat/catalog"

	"github.com/scott-cotton/cli"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: validate takes no arguments", cli.ErrUsage)
	}
	c, _, err := cfg.load(false)
	if err != nil {
		return err
	}
	err = catalog.ValidateRecursively(c)
	if err == nil {
		_, err = fmt.Fprintf(cc.Out, "%s: ok\n", c.Name())
		return err
	}
	var joined interface{ Unwrap() []error }
	errs := []error{err}
	if errors.As(err, &joined) {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		fmt.Fprintf(cc.Out, "%s: %v\n", c.Name(), e)
	}
	return cli.ExitCodeErr(1)
}
