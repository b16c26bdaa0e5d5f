package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/config"
	"blackbird/internal/platform/logx"
	"blackbird/internal/platform/ui"
	"blackbird/internal/testutil"
)

type fakeVerifier struct {
	mu      sync.Mutex
	calls   []string
	results map[string]domain.ResultSet
	err     error
}

func (f *fakeVerifier) Verify(ctx context.Context, id domain.Identifier, opts ports.VerifyOptions) (domain.ResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id.Value)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[id.Value], nil
}

type fakeUpdater struct {
	calls int
	err   error
}

func (f *fakeUpdater) Update(ctx context.Context) (ports.CatalogReport, error) {
	f.calls++
	return ports.CatalogReport{Sites: 3}, f.err
}

func testDeps(t *testing.T, v *fakeVerifier, u *fakeUpdater) (deps, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("BLACKBIRD_LOG_FILE", "")
	t.Setenv("BLACKBIRD_CONFIG", "")

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return deps{
		stdout: stdout,
		stderr: stderr,
		now:    func() time.Time { return time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC) },
		newVerifier: func(cfg config.Config, logger logx.Logger) ports.Verifier {
			return v
		},
		newUpdater: func(cfg config.Config, logger logx.Logger) (ports.CatalogUpdater, error) {
			return u, nil
		},
		newEnricher: func(logger logx.Logger) ports.Enricher { return nil },
		newPresenter: func(cfg config.Config, out io.Writer) ui.Presenter {
			return ui.NewRawPresenter(out, ui.LogFormatText, cfg.Verbose)
		},
	}, stdout, stderr
}

func TestRun_ConfigurationErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no identifiers", []string{"--csv"}, "either --username or --email is required"},
		{"permute without usernames", []string{"--permute", "-e", "a@example.com"}, "permutations require --username"},
		{"unreadable username file", []string{"--username-file", filepath.Join(dir, "missing.txt")}, "could not read file"},
		{"unknown flag", []string{"--bogus"}, "flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, u := &fakeVerifier{}, &fakeUpdater{}
			d, _, stderr := testDeps(t, v, u)

			code := run(tt.args, d)

			testutil.AssertEqual(t, code, exitConfig, "exit code")
			testutil.AssertContains(t, stderr.String(), tt.want, "error message")
			testutil.AssertEqual(t, len(v.calls), 0, "no verification calls")
			testutil.AssertEqual(t, u.calls, 0, "no catalog update")
		})
	}
}

func TestRun_InfoFlags(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"--about", "WhatsMyName"},
		{"--help", "USAGE:"},
		{"--version", "Blackbird dev"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			v, u := &fakeVerifier{}, &fakeUpdater{}
			d, stdout, _ := testDeps(t, v, u)

			code := run([]string{tt.flag, "-u", "alice"}, d)

			testutil.AssertEqual(t, code, exitOK, "exit code")
			testutil.AssertContains(t, stdout.String(), tt.want, "output")
			testutil.AssertEqual(t, len(v.calls), 0, "no verification calls")
			testutil.AssertEqual(t, u.calls, 0, "no catalog update")
		})
	}
}

func TestRun_ExportsOnlyIdentifiersWithMatches(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results")
	v := &fakeVerifier{results: map[string]domain.ResultSet{
		"x": {
			{Site: "A", Category: "social", URL: "https://a.example/x", Status: 200},
			{Site: "B", Category: "coding", URL: "https://b.example/x", Status: 200},
			{Site: "C", Category: "social", URL: "https://c.example/x", Status: 200},
		},
	}}
	u := &fakeUpdater{err: errors.New("network down")}
	d, stdout, _ := testDeps(t, v, u)

	code := run([]string{"-u", "x,y", "--csv", "--json", "-o", out}, d)

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertEqual(t, u.calls, 1, "catalog update attempted once")
	testutil.AssertEqual(t, len(v.calls), 2, "both identifiers verified")
	testutil.AssertContains(t, stdout.String(), "catalog_update_failed", "update failure surfaced")

	entries, err := os.ReadDir(out)
	testutil.AssertNoError(t, err, "read results dir")
	testutil.AssertEqual(t, len(entries), 1, "one identifier dir")
	testutil.AssertEqual(t, entries[0].Name(), "x_01_05_2026", "dir for x only")

	files := testutil.ListFiles(t, filepath.Join(out, "x_01_05_2026"))
	testutil.AssertLen(t, files, 2, "csv and json")
}

func TestRun_FatalVerificationError(t *testing.T) {
	v := &fakeVerifier{err: domain.ErrCatalogNotFound}
	u := &fakeUpdater{}
	d, stdout, _ := testDeps(t, v, u)

	code := run([]string{"-u", "alice", "-u", "bob", "--no-update", "-o", t.TempDir()}, d)

	testutil.AssertEqual(t, code, exitFatal, "exit code")
	testutil.AssertEqual(t, u.calls, 0, "update skipped")
	testutil.AssertEqual(t, len(v.calls), 1, "run aborted after first identifier")
	testutil.AssertContains(t, stdout.String(), "--no-update", "hint shown")
}

func TestDescribe(t *testing.T) {
	testutil.AssertEqual(t, describe(context.Canceled), "run interrupted", "cancelled")
	testutil.AssertEqual(t, describe(errors.New("boom")), "boom", "default")
}
