// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
Blackbird - OSINT account search by username and email

USAGE:
  blackbird -u <username> [options]
  blackbird -e <email> [options]

IDENTIFIERS:
  -u, --username strings      One or more usernames (repeat or comma separate)
      --username-file string  File with one username per line (# for comments)
  -e, --email strings         One or more emails (repeat or comma separate)
      --email-file string     File with one email per line (# for comments)

PERMUTATIONS:
      --permute               Combine username elements, ignoring single elements
      --permuteall            Combine username elements, including single elements

OUTPUT OPTIONS:
      --csv                   Write a CSV with the results
      --pdf                   Write a PDF report with the results
      --json                  Write a JSON file with the results
      --dump                  Save the HTML of every found account
  -o, --out string            Results directory (default: "results")

SEARCH OPTIONS:
      --filter string         Filter sites, e.g. 'cat=social and e_code=200'
      --no-nsfw               Skip NSFW sites
      --proxy string          Proxy for HTTP requests (http, https, socks5)
      --timeout int           Timeout in seconds per request (default: 30)
      --max-concurrent-requests int
                              Concurrent requests (default: 30)
      --no-update             Don't update the sites list
      --ai                    Extract named entities from found accounts

GENERAL:
  -v, --verbose               Show misses and errors for every site
      --config string         YAML run profile
      --about                 Show information about the tool and exit
      --version               Print version information and exit
  -h, --help                  Show this help message

FILTER SYNTAX:
  <key> <op> <value> clauses joined by 'and' / 'or' ('and' binds tighter)
  keys: name cat uri_check e_code e_string m_code m_string
  ops:  =  !=  ~ (contains)  >  <  >=  <=

ENVIRONMENT VARIABLES:
  BLACKBIRD_TIMEOUT=60              Timeout in seconds
  BLACKBIRD_MAX_CONCURRENT=10       Concurrent requests
  BLACKBIRD_PROXY=http://...        Proxy URL
  BLACKBIRD_OUTPUT_DIR=/path        Results directory
  BLACKBIRD_LOG_LEVEL=debug         Console log level
  BLACKBIRD_LOG_FILE=path           Debug log file ("" disables it)
  BLACKBIRD_CATALOG=path            Username sites list
  BLACKBIRD_EMAIL_CATALOG=path      Email sites list
  INSTAGRAM_SESSION_ID=...          Session for session-gated email sites

  Note: CLI flags override environment variables, which override --config.

EXAMPLES:
  blackbird -u alice
  blackbird -u alice,alice_dev --csv --pdf
  blackbird -u john -u doe --permute --no-nsfw
  blackbird -e alice@example.com --json
  blackbird --username-file users.txt --filter 'cat=social' --dump
`

const aboutText = `
Blackbird

Blackbird searches for accounts by username and email across hundreds of sites.
Username sites come from the WhatsMyName project (https://github.com/WebBreacher/WhatsMyName),
refreshed before every run unless --no-update is given. Email sites ship with the tool.

Every found account is checked with the rules of its site: expected status code,
expected text in the page and the absence of the "missing account" markers.
Results can be exported as CSV, PDF and JSON, one folder per identifier and date.

Use it only on identifiers you are authorized to investigate.
`

// PrintHelp escribe el mensaje de ayuda.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintAbout escribe la información estática de la herramienta.
func PrintAbout(w io.Writer) {
	fmt.Fprint(w, aboutText)
}

// PrintVersion escribe la información de versión.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "Blackbird %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
