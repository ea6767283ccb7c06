package main

import (
	"io"
	"os"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/config"
	"github.com/signadot/partcat/encode"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

const DefaultSession = "partcat.yaml"

type MainConfig struct {
	Session    string `cli:"name=s aliases=session desc='session file (default partcat.yaml if present)'"`
	Collection string `cli:"name=C aliases=collection desc='collection to work on (default the first)'"`
	Color      bool   `cli:"name=color desc='output with color'"`
	Gops       bool   `cli:"name=gops desc='start a gops agent'"`
	LogLevel   string `cli:"name=log desc='log level: debug, info, warn, error'"`

	Out      string
	CloseOut func() error

	Config   *config.Config
	Registry *catalog.Registry

	Main *cli.Command
}

// colors returns the show colors for w, or nil for plain output. Without
// -color, terminals get colors.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return nil
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if c := cfg.colors(w); c != nil {
		res = append(res, encode.EncodeColors(c))
	}
	return res
}

type ShowConfig struct {
	*MainConfig
	Full bool   `cli:"name=full desc='materialize every table'"`
	Sort string `cli:"name=sort desc='order directories and tables: name, collated (default as stored)'"`
	Lang string `cli:"name=lang desc='collation language tag (default und)'"`

	Show *cli.Command
}

type LoadConfig struct {
	*MainConfig
	Partial bool `cli:"name=partial desc='load directories and table stubs only'"`
	XML     bool `cli:"name=x desc='write the loaded collection as xml'"`

	Load *cli.Command
}

type DiffConfig struct {
	*MainConfig
	All bool `cli:"name=a desc='show equal lines too'"`

	Diff *cli.Command
}

type DownloadConfig struct {
	*MainConfig

	Download *cli.Command
}

type ProcessConfig struct {
	*MainConfig
	Bind bool `cli:"name=bind desc='merge into existing parameters, keeping their comments'"`

	Process *cli.Command
}

type ReorganizeConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n desc='show the changes without writing them'"`

	Reorganize *cli.Command
}

type SearchConfig struct {
	*MainConfig
	Filter string `cli:"name=f desc='filter expression, replacing the saved one'"`
	Save   bool   `cli:"name=save desc='save the search'"`

	Search *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Validate *cli.Command
}

type SessionConfig struct {
	*MainConfig

	SessionCmd *cli.Command
}
