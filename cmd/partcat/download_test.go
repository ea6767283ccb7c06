package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/config"

	"github.com/google/go-cmp/cmp"
)

func TestFetcher(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		if strings.HasSuffix(r.URL.Path, "/missing") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("A,B\n1,2\n"))
	}))
	defer srv.Close()

	reg := catalog.NewRegistry()
	f := newFetcher(context.Background(), config.Fetch{Timeout: 5 * time.Second}, srv.URL)
	text, err := f.fetch(catalog.NewTable(reg, "t", "/products/52?page=1", 0, ""))
	if err != nil {
		t.Fatal(err)
	}
	if text != "A,B\n1,2\n" {
		t.Errorf("got %q", text)
	}
	if _, err := f.fetch(catalog.NewTable(reg, "u", "missing", 0, srv.URL+"/base/")); err == nil {
		t.Error("expected an error for a 404")
	}
	if diff := cmp.Diff([]string{"/products/52?page=1", "/base/missing"}, paths); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
}

func TestFetcherCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newFetcher(ctx, config.Fetch{Delay: time.Hour}, "http://127.0.0.1:1")
	if _, err := f.fetch(catalog.NewTable(catalog.NewRegistry(), "t", "/x", 0, "")); err == nil {
		t.Error("expected an error from a canceled context")
	}
}

func TestSkeleton(t *testing.T) {
	reg := catalog.NewRegistry()
	c := catalog.NewCollection(reg, "c", "", "")
	d := catalog.NewDirectory(reg, "Resistors")
	tbl := catalog.NewTable(reg, "Chip", "", 0, "")
	for _, err := range []error{
		c.DirectoryInsert(d),
		d.TableInsert(tbl),
		tbl.ParameterInsert(catalog.NewParameter(reg, "R", 0, catalog.StringType)),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	want := []string{" Directory('Resistors')", "  Table('Chip')"}
	if diff := cmp.Diff(want, skeleton(c)); diff != "" {
		t.Errorf("skeleton (-want +got):\n%s", diff)
	}
}
