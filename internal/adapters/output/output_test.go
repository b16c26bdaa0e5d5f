// internal/adapters/output/output_test.go
package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/testutil"
)

var runDate = time.Date(2026, time.March, 7, 10, 30, 0, 0, time.UTC)

func sampleResults() domain.ResultSet {
	return domain.ResultSet{
		{Site: "GitHub", Category: "coding", URL: "https://github.com/alice", Status: 200},
		{
			Site: "Gravatar", Category: "social", URL: "https://gravatar.com/alice", Status: 200,
			Metadata: []domain.MetadataField{{Name: "Name", Value: "Alice"}, {Name: "Location", Value: "Zürich"}},
			Entities: []domain.Entity{{Text: "Alice", Label: "PERSON"}},
		},
	}
}

func newJob(t *testing.T, id domain.Identifier) ports.ExportJob {
	t.Helper()
	ws := NewWorkspace(t.TempDir(), runDate)
	dir, err := ws.Dir(id).Ensure()
	testutil.AssertNoError(t, err, "ensure dir")
	return ws.Job(id, dir)
}

func TestWorkspace_Layout(t *testing.T) {
	root := t.TempDir()
	ws := NewWorkspace(root, runDate)

	testutil.AssertEqual(t, ws.DateStamp(), "03_07_2026", "date stamp")
	testutil.AssertEqual(t, ws.DatePretty(), "March 07, 2026", "pretty date")

	dir := ws.Dir(domain.NewEmail("john.doe@mail.com"))
	testutil.AssertEqual(t, dir.Path(), filepath.Join(root, "john.doe@mail.com_03_07_2026"), "dir path")
	testutil.AssertFalse(t, dir.Created(), "not created before Ensure")
	testutil.AssertFalse(t, testutil.FileExists(dir.Path()), "nothing on disk")

	job := ws.Job(domain.NewUsername("alice"), "x")
	testutil.AssertEqual(t, job.FileName(domain.SinkCSV), "alice_03_07_2026_blackbird.csv", "file name")
}

func TestWorkspace_DistinctIdentifiersNeverShareDir(t *testing.T) {
	root := t.TempDir()
	ws := NewWorkspace(root, runDate)

	ids := []domain.Identifier{
		domain.NewEmail("a+b@x.com"),
		domain.NewEmail("a_b@x.com"),
		domain.NewUsername("a_b_x.com"),
		domain.NewUsername("a:b@x.com"),
		domain.NewUsername("a;b@x.com"),
		domain.NewUsername("a_b@x.com"),
	}

	seen := make(map[string]domain.Identifier, len(ids))
	for _, id := range ids {
		path := ws.Dir(id).Path()
		if prev, ok := seen[path]; ok {
			t.Fatalf("%s %q and %s %q share %s", prev.Kind, prev.Value, id.Kind, id.Value, path)
		}
		seen[path] = id
	}

	testutil.AssertEqual(t, ws.Dir(domain.NewEmail("a_b@x.com")).Path(),
		filepath.Join(root, "a_b@x.com_03_07_2026"), "first claim keeps the plain name")
	testutil.AssertEqual(t, ws.Dir(domain.NewUsername("a_b@x.com")).Path(),
		filepath.Join(root, "a_b@x.com_2_03_07_2026"), "same value of another kind is suffixed")
}

func TestWorkspace_CollidingIdentifiersKeepTheirExports(t *testing.T) {
	ws := NewWorkspace(t.TempDir(), runDate)

	export := func(id domain.Identifier) string {
		dir, err := ws.Dir(id).Ensure()
		testutil.AssertNoError(t, err, "ensure dir")
		path, err := JSONSink{}.Export(sampleResults(), ws.Job(id, dir))
		testutil.AssertNoError(t, err, "export")
		return path
	}

	first := export(domain.NewEmail("a+b@x.com"))
	second := export(domain.NewEmail("a:b@x.com"))
	third := export(domain.NewUsername("a+b@x.com"))

	testutil.AssertNotEqual(t, first, second, "distinct emails")
	testutil.AssertNotEqual(t, first, third, "same value, different kind")

	data, err := os.ReadFile(first)
	testutil.AssertNoError(t, err, "read first export")
	testutil.AssertContains(t, string(data), `"identifier": "a+b@x.com"`, "first export untouched")
	testutil.AssertContains(t, string(data), `"kind": "email"`, "first export untouched")
}

func TestIdentifierDir_EnsureIdempotent(t *testing.T) {
	ws := NewWorkspace(filepath.Join(t.TempDir(), "results"), runDate)
	dir := ws.Dir(domain.NewUsername("alice"))

	first, err := dir.Ensure()
	testutil.AssertNoError(t, err, "first ensure")
	second, err := dir.Ensure()
	testutil.AssertNoError(t, err, "second ensure")

	testutil.AssertEqual(t, first, second, "same path")
	testutil.AssertTrue(t, dir.Created(), "created")
	testutil.AssertTrue(t, testutil.FileExists(first), "dir on disk")
}

func TestIdentifierDir_EnsureFails(t *testing.T) {
	root := testutil.WriteFile(t, t.TempDir(), "file.txt", "not a dir")
	dir := NewWorkspace(root, runDate).Dir(domain.NewUsername("alice"))

	_, err := dir.Ensure()
	testutil.AssertError(t, err, "parent is a file")
	testutil.AssertFalse(t, dir.Created(), "not created")
}

func TestJSONSink_Export(t *testing.T) {
	job := newJob(t, domain.NewUsername("alice"))

	path, err := JSONSink{}.Export(sampleResults(), job)
	testutil.AssertNoError(t, err, "export")
	testutil.AssertEqual(t, filepath.Base(path), "alice_03_07_2026_blackbird.json", "file name")

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read")
	testutil.AssertContains(t, string(data), "\n  ", "indented")

	var report JSONReport
	testutil.AssertNoError(t, json.Unmarshal(data, &report), "decode")
	testutil.AssertEqual(t, report.Identifier, "alice", "identifier")
	testutil.AssertEqual(t, report.Kind, "username", "kind")
	testutil.AssertEqual(t, report.Date, "March 07, 2026", "date")
	testutil.AssertEqual(t, report.Total, 2, "total")
	testutil.AssertEqual(t, report.Categories["social"], 1, "categories")
	testutil.AssertEqual(t, report.Accounts[1].Metadata[1].Value, "Zürich", "metadata kept")
	testutil.AssertEqual(t, report.Accounts[1].Entities[0].Label, "PERSON", "entities kept")
}

func TestJSONSink_MissingDir(t *testing.T) {
	job := ports.ExportJob{
		Identifier: domain.NewUsername("alice"),
		Dir:        filepath.Join(t.TempDir(), "missing"),
		DateStamp:  "03_07_2026",
	}
	_, err := JSONSink{}.Export(sampleResults(), job)
	testutil.AssertError(t, err, "directory does not exist")
}

func TestCSVSink_Export(t *testing.T) {
	job := newJob(t, domain.NewEmail("alice@example.com"))

	path, err := CSVSink{}.Export(sampleResults(), job)
	testutil.AssertNoError(t, err, "export")
	testutil.AssertEqual(t, filepath.Base(path), "alice@example.com_03_07_2026_blackbird.csv", "file name")

	f, err := os.Open(path)
	testutil.AssertNoError(t, err, "open")
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	testutil.AssertNoError(t, err, "parse csv")
	testutil.AssertEqual(t, len(rows), 3, "header + rows")
	testutil.AssertEqual(t, strings.Join(rows[0], ","), "name,category,url,status,metadata", "header")
	testutil.AssertEqual(t, rows[1][0], "GitHub", "first row")
	testutil.AssertEqual(t, rows[1][3], "200", "status")
	testutil.AssertEqual(t, rows[2][4], "Name: Alice; Location: Zürich", "metadata column")
}

func TestPDFSink_Export(t *testing.T) {
	job := newJob(t, domain.NewUsername("alice"))

	path, err := PDFSink{Version: "dev"}.Export(sampleResults(), job)
	testutil.AssertNoError(t, err, "export")
	testutil.AssertEqual(t, filepath.Base(path), "alice_03_07_2026_blackbird.pdf", "file name")

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read")
	testutil.AssertTrue(t, strings.HasPrefix(string(data), "%PDF-"), "pdf header")
}

func TestNewSink(t *testing.T) {
	for _, f := range domain.SinkOrder {
		s, err := NewSink(f, "dev")
		testutil.AssertNoError(t, err, string(f))
		testutil.AssertEqual(t, s.Format(), f, "format")
	}

	_, err := NewSink("xml", "dev")
	testutil.AssertErrorIs(t, err, domain.ErrUnsupportedFormat, "unknown format")

	sinks := Sinks("dev")
	testutil.AssertEqual(t, len(sinks), 3, "all sinks")
	testutil.AssertEqual(t, sinks[0].Format(), domain.SinkCSV, "csv first")
	testutil.AssertEqual(t, sinks[2].Format(), domain.SinkJSON, "json last")
}
