// Package config reads the session file of partcat: the collections to
// work on, fetch pacing, and logging.
//
//	collections:
//	- name: Digi-Key
//	  root: catalogs/digikey
//	  searches: searches/digikey
//	  csvs: csvs/digikey
//	  base: https://www.digikey.com
//	fetch:
//	  delay: 2s
//	  timeout: 30s
//	log:
//	  level: info
//	  format: text
//
// Relative paths are taken relative to the directory of the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

// ErrConfig is wrapped by errors reading or validating a session.
var ErrConfig = errors.New("config error")

type Config struct {
	Collections []Collection `yaml:"collections"`
	Fetch       Fetch        `yaml:"fetch"`
	Log         Log          `yaml:"log"`
}

type Collection struct {
	Name     string `yaml:"name"`
	Root     string `yaml:"root"`
	Searches string `yaml:"searches"`
	CSVs     string `yaml:"csvs,omitempty"`
	Base     string `yaml:"base,omitempty"`
}

// Fetch paces sample downloads: at most one request per Delay, each
// bounded by Timeout.
type Fetch struct {
	Delay   time.Duration `yaml:"delay"`
	Timeout time.Duration `yaml:"timeout"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Fetch: Fetch{
			Delay:   time.Second,
			Timeout: 30 * time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path over the defaults and validates it.
func Load(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes d over the defaults and validates the result. Unknown
// fields are errors.
func Parse(d []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(d, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range c.Collections {
		coll := &c.Collections[i]
		coll.Root = abs(coll.Root)
		coll.Searches = abs(coll.Searches)
		coll.CSVs = abs(coll.CSVs)
	}
}

func (c *Config) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for i, coll := range c.Collections {
		if coll.Name == "" {
			errs = append(errs, fmt.Errorf("%w: collection %d has no name", ErrConfig, i))
		} else if seen[coll.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate collection %q", ErrConfig, coll.Name))
		}
		seen[coll.Name] = true
		if coll.Root == "" {
			errs = append(errs, fmt.Errorf("%w: collection %q has no root", ErrConfig, coll.Name))
		}
		if coll.Searches == "" {
			errs = append(errs, fmt.Errorf("%w: collection %q has no searches", ErrConfig, coll.Name))
		}
	}
	if c.Fetch.Delay < 0 {
		errs = append(errs, fmt.Errorf("%w: negative fetch delay %s", ErrConfig, c.Fetch.Delay))
	}
	if c.Fetch.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: negative fetch timeout %s", ErrConfig, c.Fetch.Timeout))
	}
	return errors.Join(errs...)
}

// Collection returns the collection named name.
func (c *Config) Collection(name string) (*Collection, error) {
	for i := range c.Collections {
		if c.Collections[i].Name == name {
			return &c.Collections[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no collection %q", ErrConfig, name)
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
