package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"blackbird/internal/core/domain"
	"blackbird/internal/testutil"
)

func fixtureCatalog(t *testing.T) Catalog {
	t.Helper()
	c, err := Parse([]byte(strings.ReplaceAll(testutil.FixtureCatalogJSON, "{base}", "http://localhost")))
	testutil.AssertNoError(t, err, "parse fixture")
	return c
}

func TestParse(t *testing.T) {
	c := fixtureCatalog(t)
	testutil.AssertEqual(t, len(c.Sites), 3, "sites")
	testutil.AssertEqual(t, c.Sites[0].Name, "FoundSite", "first site")
	testutil.AssertEqual(t, c.Sites[0].ECode, 200, "e_code")
	testutil.AssertTrue(t, c.Sites[2].IsNSFW(), "nsfw category")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "<html>"},
		{"no sites", `{"sites": []}`},
		{"site without name", `{"sites": [{"uri_check": "https://x/{account}"}]}`},
		{"site without placeholder", `{"sites": [{"name": "X", "uri_check": "https://x/"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			testutil.AssertErrorIs(t, err, domain.ErrCatalogInvalid, "Parse()")
		})
	}
}

func TestSite_Matches(t *testing.T) {
	site := Site{ECode: 200, EString: "profile of", MCode: 404, MString: "not found"}

	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"expected status and string", 200, "the profile of alice", true},
		{"wrong status", 302, "the profile of alice", false},
		{"missing e_string", 200, "welcome", false},
		{"m_string present", 200, "profile of nobody: not found", false},
		{"m_code", 404, "profile of", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, site.Matches(tt.status, []byte(tt.body)), tt.want, "Matches()")
		})
	}

	sameCode := Site{ECode: 200, EString: "\"users\":[{", MCode: 200, MString: "\"users\":[]"}
	testutil.AssertTrue(t, sameCode.Matches(200, []byte(`{"users":[{"id":1}]}`)), "same e/m code relies on strings")
	testutil.AssertFalse(t, sameCode.Matches(200, []byte(`{"users":[]}`)), "m_string rejects")
}

func TestSite_URLs(t *testing.T) {
	site := Site{
		URICheck:     "https://api.example.com/users/{account}",
		URIPretty:    "https://example.com/@{account}",
		StripBadChar: ".",
	}

	account := site.Account("john.doe")
	testutil.AssertEqual(t, account, "johndoe", "strip_bad_char")
	testutil.AssertEqual(t, site.CheckURL(account), "https://api.example.com/users/johndoe", "check url")
	testutil.AssertEqual(t, site.PrettyURL(account), "https://example.com/@johndoe", "pretty url")

	plain := Site{URICheck: "https://example.com/{account}"}
	testutil.AssertEqual(t, plain.PrettyURL("alice"), "https://example.com/alice", "pretty falls back to check url")
	testutil.AssertEqual(t, plain.HTTPMethod(), "GET", "default method")
}

func TestSite_EmailExtensions(t *testing.T) {
	site := Site{
		URICheck:       "https://example.com/check",
		PostBody:       "email={account}",
		InputOperation: "md5",
		Headers:        map[string]string{"Cookie": "sessionid={session}", "X-User": "{account}"},
	}

	account := site.Account("  Alice@Example.com ")
	testutil.AssertEqual(t, account, "c160f8cc69a4f0bf2b0362752353d060", "md5 of trimmed lowercase email")
	testutil.AssertEqual(t, site.HTTPMethod(), "POST", "post_body implies POST")
	testutil.AssertEqual(t, site.Body("a"), "email=a", "body")
	testutil.AssertTrue(t, site.NeedsSession(), "session placeholder")

	headers := site.RequestHeaders("a", "s3cr3t")
	testutil.AssertEqual(t, headers["Cookie"], "sessionid=s3cr3t", "session header")
	testutil.AssertEqual(t, headers["X-User"], "a", "account header")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "wmn-data.json", testutil.FixtureCatalogJSON)

	c, err := Load(path)
	testutil.AssertNoError(t, err, "Load()")
	testutil.AssertEqual(t, len(c.Sites), 3, "sites")

	_, err = Load(filepath.Join(dir, "missing.json"))
	testutil.AssertErrorIs(t, err, domain.ErrCatalogNotFound, "missing catalog")

	bad := testutil.WriteFile(t, dir, "bad.json", "{}")
	_, err = Load(bad)
	testutil.AssertErrorIs(t, err, domain.ErrCatalogInvalid, "invalid catalog")
}

func TestLoadEmail_FallsBackToEmbedded(t *testing.T) {
	c, err := LoadEmail(filepath.Join(t.TempDir(), "missing.json"))
	testutil.AssertNoError(t, err, "LoadEmail()")
	testutil.AssertTrue(t, len(c.Sites) > 0, "embedded catalog has sites")

	var gravatar *Site
	for i := range c.Sites {
		if c.Sites[i].Name == "Gravatar" {
			gravatar = &c.Sites[i]
		}
	}
	if gravatar == nil {
		t.Fatal("embedded catalog should contain Gravatar")
	}
	testutil.AssertEqual(t, gravatar.InputOperation, "md5", "gravatar hashes the email")
	testutil.AssertTrue(t, len(gravatar.Metadata) > 0, "gravatar extracts metadata")
}

func TestLoadEmail_PrefersDisk(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "email-data.json",
		`{"sites": [{"name": "Local", "uri_check": "https://local/{account}", "e_code": 200, "e_string": "ok"}]}`)

	c, err := LoadEmail(path)
	testutil.AssertNoError(t, err, "LoadEmail()")
	testutil.AssertEqual(t, len(c.Sites), 1, "disk catalog")
	testutil.AssertEqual(t, c.Sites[0].Name, "Local", "disk site")
}
