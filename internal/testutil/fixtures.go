// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureUsernames contiene usernames de prueba.
var FixtureUsernames = []string{
	"alice",
	"bob",
	"john_doe",
}

// FixtureEmails contiene emails de prueba.
var FixtureEmails = []string{
	"admin@example.com",
	"contact@example.co.uk",
	"info@subdomain.example.com",
}

// FixtureInvalidEmails contiene emails inválidos.
var FixtureInvalidEmails = []string{
	"not-an-email",
	"@example.com",
	"user@",
}

// FixtureCatalogJSON es un catálogo WhatsMyName mínimo.
// Las URIs usan {base} para que los tests lo reemplacen por la URL de httptest.
const FixtureCatalogJSON = `{
  "license": ["CC BY-SA 4.0"],
  "authors": ["test"],
  "categories": ["social", "coding", "xx NSFW xx"],
  "sites": [
    {
      "name": "FoundSite",
      "uri_check": "{base}/found/{account}",
      "e_code": 200,
      "e_string": "profile of",
      "m_string": "not found",
      "m_code": 404,
      "known": ["alice"],
      "cat": "social"
    },
    {
      "name": "MissingSite",
      "uri_check": "{base}/missing/{account}",
      "e_code": 200,
      "e_string": "profile of",
      "m_string": "not found",
      "m_code": 404,
      "known": ["alice"],
      "cat": "coding"
    },
    {
      "name": "AdultSite",
      "uri_check": "{base}/found/{account}",
      "uri_pretty": "{base}/u/{account}",
      "e_code": 200,
      "e_string": "profile of",
      "m_string": "not found",
      "m_code": 404,
      "known": ["alice"],
      "cat": "xx NSFW xx"
    }
  ]
}`
