package enrich

import (
	"context"
	"strings"
	"testing"

	"blackbird/internal/core/domain"
	"blackbird/internal/testutil"
)

const page = `<html><head><title>Alice Smith - Profile</title>
<style>body { color: red }</style>
<script>var tracking = "Bob";</script></head>
<body><h1>Alice Smith</h1>
<p>Alice Smith works at Google in   London.</p>
<noscript>enable javascript</noscript></body></html>`

func TestVisibleText(t *testing.T) {
	text := VisibleText([]byte(page), 0)

	testutil.AssertContains(t, text, "Alice Smith - Profile", "title")
	testutil.AssertContains(t, text, "Alice Smith works at Google in London.", "collapsed spaces")
	testutil.AssertFalse(t, strings.Contains(text, "tracking"), "script skipped")
	testutil.AssertFalse(t, strings.Contains(text, "color"), "style skipped")
	testutil.AssertFalse(t, strings.Contains(text, "javascript"), "noscript skipped")
}

func TestVisibleText_Limit(t *testing.T) {
	text := VisibleText([]byte("<p>one</p><p>two</p><p>three</p>"), 3)
	testutil.AssertEqual(t, text, "one", "stops at limit")

	testutil.AssertEqual(t, VisibleText(nil, 0), "", "empty input")
}

func TestNER_RequiresInit(t *testing.T) {
	n := NewNER(0, nil)
	err := n.Enrich(context.Background(), &domain.FoundAccount{Content: []byte(page)})
	testutil.AssertErrorIs(t, err, domain.ErrEnricherInit, "not initialized")
}

func TestNER_InitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := NewNER(0, nil)
	err := n.Init(ctx)
	testutil.AssertErrorIs(t, err, context.Canceled, "cancelled init")

	err = n.Enrich(context.Background(), &domain.FoundAccount{Content: []byte(page)})
	testutil.AssertErrorIs(t, err, domain.ErrEnricherInit, "still not initialized")
}

func TestNER_Enrich(t *testing.T) {
	n := NewNER(0, nil)
	testutil.AssertNoError(t, n.Init(context.Background()), "init")
	testutil.AssertEqual(t, n.Name(), "prose-ner", "name")

	account := &domain.FoundAccount{Site: "Example", Content: []byte(page)}
	testutil.AssertNoError(t, n.Enrich(context.Background(), account), "enrich")

	seen := make(map[string]int)
	for _, e := range account.Entities {
		testutil.AssertTrue(t, e.Text != "" && e.Label != "", "entity has text and label")
		seen[e.Label+"|"+strings.ToLower(e.Text)]++
	}
	for key, count := range seen {
		testutil.AssertEqual(t, count, 1, "duplicate entity "+key)
	}
}

func TestNER_EnrichWithoutContent(t *testing.T) {
	n := NewNER(0, nil)
	testutil.AssertNoError(t, n.Init(context.Background()), "init")

	account := &domain.FoundAccount{Site: "Example"}
	testutil.AssertNoError(t, n.Enrich(context.Background(), account), "enrich")
	testutil.AssertEqual(t, len(account.Entities), 0, "no entities")
}
