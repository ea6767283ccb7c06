package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/config"
	"github.com/signadot/partcat/debug"
	"github.com/signadot/partcat/store"

	"github.com/scott-cotton/cli"
	"golang.org/x/time/rate"
)

func download(cfg *DownloadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Download.Parse(cc, args)
	if err != nil {
		cfg.Download.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: download takes no arguments", cli.ErrUsage)
	}
	c, coll, err := cfg.load(true)
	if err != nil {
		return err
	}
	if coll.CSVs == "" {
		return fmt.Errorf("%w: collection %q has no csvs directory", cli.ErrUsage, coll.Name)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	f := newFetcher(ctx, cfg.Config.Fetch, coll.Base)
	n, err := store.CSVsDownload(c, coll.CSVs, f.fetch)
	theLog.Info("download", "collection", coll.Name, "samples", n)
	return err
}

// fetcher gets samples over http, one request per fetch delay.
type fetcher struct {
	ctx     context.Context
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	base    string
}

func newFetcher(ctx context.Context, fc config.Fetch, base string) *fetcher {
	limit := rate.Inf
	if fc.Delay > 0 {
		limit = rate.Every(fc.Delay)
	}
	return &fetcher{
		ctx:     ctx,
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(limit, 1),
		timeout: fc.Timeout,
		base:    base,
	}
}

// url resolves the url of t against its base, or the collection's.
func (f *fetcher) url(t *catalog.Table) (string, error) {
	base := t.Base
	if base == "" {
		base = f.base
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("bad base %q: %w", base, err)
	}
	ref, err := url.Parse(t.URL)
	if err != nil {
		return "", fmt.Errorf("bad url %q: %w", t.URL, err)
	}
	return b.ResolveReference(ref).String(), nil
}

func (f *fetcher) fetch(t *catalog.Table) (string, error) {
	u, err := f.url(t)
	if err != nil {
		return "", err
	}
	if err := f.limiter.Wait(f.ctx); err != nil {
		return "", err
	}
	ctx := f.ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	if debug.Fetch() {
		debug.Logf("GET %s\n", u)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("url %s gave %d/%s", u, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	d, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
