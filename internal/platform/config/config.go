// internal/platform/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"blackbird/internal/core/domain"
)

// Valores por defecto del run.
const (
	DefaultTimeoutS         = 30
	DefaultMaxConcurrent    = 30
	DefaultOutputDir        = "results"
	DefaultCatalogPath      = "data/wmn-data.json"
	DefaultEmailCatalogPath = "data/email-data.json"
	DefaultCatalogURL       = "https://raw.githubusercontent.com/WebBreacher/WhatsMyName/main/wmn-data.json"
	DefaultLogFile          = "logs/blackbird.log"
	DefaultLogLevel         = "info"

	// SessionEnv credencial opcional para objetivos que requieren sesión
	SessionEnv = "INSTAGRAM_SESSION_ID"
)

// Config es la configuración de un run. Se construye una vez con Load y no se muta después.
type Config struct {
	// Identifier sources
	Usernames    []string `yaml:"usernames" validate:"dive,username"`
	UsernameFile string   `yaml:"username_file"`
	Emails       []string `yaml:"emails" validate:"dive,required,email"`
	EmailFile    string   `yaml:"email_file"`

	Permutation domain.PermutationMode `yaml:"permutation" validate:"oneof=none strict all"`

	// Outputs
	Outputs   Outputs `yaml:"outputs"`
	OutputDir string  `yaml:"output_dir" validate:"required"`

	// Verification
	Filter        string `yaml:"filter" validate:"max=512"`
	NoNSFW        bool   `yaml:"no_nsfw"`
	ProxyURL      string `yaml:"proxy" validate:"omitempty,proxyurl"`
	TimeoutS      int    `yaml:"timeout" validate:"min=1,max=600"`
	MaxConcurrent int    `yaml:"max_concurrent_requests" validate:"min=1,max=1000"`
	SessionID     string `yaml:"-"`

	// Catalog
	NoUpdate         bool   `yaml:"no_update"`
	CatalogPath      string `yaml:"catalog" validate:"required"`
	EmailCatalogPath string `yaml:"email_catalog" validate:"required"`
	CatalogURL       string `yaml:"catalog_url" validate:"omitempty,url"`

	// Enrichment
	AI bool `yaml:"ai"`

	// Logging / UI
	Verbose  bool   `yaml:"verbose"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Info
	ConfigFile   string `yaml:"-"`
	About        bool   `yaml:"-"`
	Help         bool   `yaml:"-"`
	PrintVersion bool   `yaml:"-"`
}

// Outputs selecciona los sinks de exportación y el volcado crudo.
type Outputs struct {
	CSV  bool `yaml:"csv"`
	PDF  bool `yaml:"pdf"`
	JSON bool `yaml:"json"`
	Dump bool `yaml:"dump"`
}

// Sinks retorna los formatos seleccionados en el orden fijo de invocación.
func (o Outputs) Sinks() []domain.SinkFormat {
	out := make([]domain.SinkFormat, 0, len(domain.SinkOrder))
	for _, f := range domain.SinkOrder {
		if o.Enabled(f) {
			out = append(out, f)
		}
	}
	return out
}

// Enabled indica si un formato concreto fue pedido.
func (o Outputs) Enabled(f domain.SinkFormat) bool {
	switch f {
	case domain.SinkCSV:
		return o.CSV
	case domain.SinkPDF:
		return o.PDF
	case domain.SinkJSON:
		return o.JSON
	default:
		return false
	}
}

// Any indica si se pidió algún sink o el volcado crudo.
func (o Outputs) Any() bool {
	return o.CSV || o.PDF || o.JSON || o.Dump
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Permutation:      domain.PermuteNone,
		OutputDir:        DefaultOutputDir,
		TimeoutS:         DefaultTimeoutS,
		MaxConcurrent:    DefaultMaxConcurrent,
		CatalogPath:      DefaultCatalogPath,
		EmailCatalogPath: DefaultEmailCatalogPath,
		CatalogURL:       DefaultCatalogURL,
		LogFile:          DefaultLogFile,
		LogLevel:         DefaultLogLevel,
	}
}

// Load construye la configuración: defaults -> YAML (--config) -> ENV -> FLAGS.
// Los errores de flags o del archivo YAML son ConfigurationError.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs, fv := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return cfg, domain.NewConfigurationError("flags", err)
	}

	cfg.ConfigFile = getenv("BLACKBIRD_CONFIG", "")
	if fs.Changed("config") {
		cfg.ConfigFile = fv.configFile
	}
	if cfg.ConfigFile != "" {
		if err := loadFromFile(&cfg, cfg.ConfigFile); err != nil {
			return cfg, domain.NewConfigurationError("config", err)
		}
	}

	loadFromEnv(&cfg)
	applyFlags(&cfg, fs, fv)
	normalize(&cfg)

	return cfg, nil
}

// loadFromFile aplica un perfil YAML sobre la configuración actual.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", domain.ErrUnreadableFile, path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv("BLACKBIRD_TIMEOUT", ""); v != "" {
		cfg.TimeoutS = parseInt(v, cfg.TimeoutS)
	}
	if v := getenv("BLACKBIRD_MAX_CONCURRENT", ""); v != "" {
		cfg.MaxConcurrent = parseInt(v, cfg.MaxConcurrent)
	}
	if v := getenv("BLACKBIRD_PROXY", ""); v != "" {
		cfg.ProxyURL = v
	}
	if v := getenv("BLACKBIRD_OUTPUT_DIR", ""); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("BLACKBIRD_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("BLACKBIRD_LOG_FILE"); ok {
		// vacío desactiva el archivo de log
		cfg.LogFile = v
	}
	if v := getenv("BLACKBIRD_CATALOG", ""); v != "" {
		cfg.CatalogPath = v
	}
	if v := getenv("BLACKBIRD_EMAIL_CATALOG", ""); v != "" {
		cfg.EmailCatalogPath = v
	}
	if v := getenv("BLACKBIRD_NO_UPDATE", ""); v != "" {
		cfg.NoUpdate = parseBool(v)
	}

	cfg.SessionID = getenv(SessionEnv, "")
}

// flagValues recibe los flags parseados antes de aplicarlos sobre Config.
type flagValues struct {
	usernames    []string
	usernameFile string
	emails       []string
	emailFile    string

	permute    bool
	permuteAll bool

	csv, pdf, json, dump bool

	filter        string
	noNSFW        bool
	proxy         string
	timeout       int
	maxConcurrent int
	noUpdate      bool
	ai            bool
	verbose       bool
	outputDir     string
	configFile    string

	about   bool
	help    bool
	version bool
}

func newFlagSet() (*pflag.FlagSet, *flagValues) {
	fv := &flagValues{}
	fs := pflag.NewFlagSet("blackbird", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.StringSliceVarP(&fv.usernames, "username", "u", nil, "One or more usernames to search")
	fs.StringVar(&fv.usernameFile, "username-file", "", "File with one username per line")
	fs.StringSliceVarP(&fv.emails, "email", "e", nil, "One or more emails to search")
	fs.StringVar(&fv.emailFile, "email-file", "", "File with one email per line")

	fs.BoolVar(&fv.permute, "permute", false, "Permute usernames, ignoring single elements")
	fs.BoolVar(&fv.permuteAll, "permuteall", false, "Permute usernames, all elements")

	fs.BoolVar(&fv.csv, "csv", false, "Generate a CSV with the results")
	fs.BoolVar(&fv.pdf, "pdf", false, "Generate a PDF with the results")
	fs.BoolVar(&fv.json, "json", false, "Generate a JSON with the results")
	fs.BoolVar(&fv.dump, "dump", false, "Dump HTML content of found accounts")

	fs.StringVar(&fv.filter, "filter", "", "Filter sites to be searched by list property value")
	fs.BoolVar(&fv.noNSFW, "no-nsfw", false, "Remove NSFW sites from the search")
	fs.StringVar(&fv.proxy, "proxy", "", "Proxy to send HTTP requests through")
	fs.IntVar(&fv.timeout, "timeout", DefaultTimeoutS, "Timeout in seconds for each HTTP request")
	fs.IntVar(&fv.maxConcurrent, "max-concurrent-requests", DefaultMaxConcurrent, "Maximum number of concurrent requests")
	fs.BoolVar(&fv.noUpdate, "no-update", false, "Don't update sites lists")
	fs.BoolVar(&fv.ai, "ai", false, "Extract named entities from found accounts")
	fs.BoolVarP(&fv.verbose, "verbose", "v", false, "Show verbose output")
	fs.StringVarP(&fv.outputDir, "out", "o", DefaultOutputDir, "Output directory for results")
	fs.StringVar(&fv.configFile, "config", "", "YAML run profile")

	fs.BoolVar(&fv.about, "about", false, "Show about information and exit")
	fs.BoolVarP(&fv.help, "help", "h", false, "Show this help message")
	fs.BoolVar(&fv.version, "version", false, "Print version information and exit")

	return fs, fv
}

// applyFlags sobreescribe solo los flags que el usuario pasó explícitamente.
func applyFlags(cfg *Config, fs *pflag.FlagSet, fv *flagValues) {
	if fs.Changed("username") {
		cfg.Usernames = fv.usernames
	}
	if fs.Changed("username-file") {
		cfg.UsernameFile = fv.usernameFile
	}
	if fs.Changed("email") {
		cfg.Emails = fv.emails
	}
	if fs.Changed("email-file") {
		cfg.EmailFile = fv.emailFile
	}

	// permuteall gana sobre permute
	switch {
	case fv.permuteAll:
		cfg.Permutation = domain.PermuteAll
	case fv.permute:
		cfg.Permutation = domain.PermuteStrict
	}

	if fs.Changed("csv") {
		cfg.Outputs.CSV = fv.csv
	}
	if fs.Changed("pdf") {
		cfg.Outputs.PDF = fv.pdf
	}
	if fs.Changed("json") {
		cfg.Outputs.JSON = fv.json
	}
	if fs.Changed("dump") {
		cfg.Outputs.Dump = fv.dump
	}

	if fs.Changed("filter") {
		cfg.Filter = fv.filter
	}
	if fs.Changed("no-nsfw") {
		cfg.NoNSFW = fv.noNSFW
	}
	if fs.Changed("proxy") {
		cfg.ProxyURL = fv.proxy
	}
	if fs.Changed("timeout") {
		cfg.TimeoutS = fv.timeout
	}
	if fs.Changed("max-concurrent-requests") {
		cfg.MaxConcurrent = fv.maxConcurrent
	}
	if fs.Changed("no-update") {
		cfg.NoUpdate = fv.noUpdate
	}
	if fs.Changed("ai") {
		cfg.AI = fv.ai
	}
	if fs.Changed("verbose") {
		cfg.Verbose = fv.verbose
	}
	if fs.Changed("out") {
		cfg.OutputDir = fv.outputDir
	}

	cfg.About = fv.about
	cfg.Help = fv.help
	cfg.PrintVersion = fv.version
}

func normalize(c *Config) {
	c.Usernames = trimAll(c.Usernames)
	c.Emails = trimAll(c.Emails)
	c.UsernameFile = strings.TrimSpace(c.UsernameFile)
	c.EmailFile = strings.TrimSpace(c.EmailFile)
	c.Filter = strings.TrimSpace(c.Filter)
	c.ProxyURL = strings.TrimSpace(c.ProxyURL)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Permutation == "" {
		c.Permutation = domain.PermuteNone
	}
	if c.TimeoutS < 1 {
		c.TimeoutS = 1
	}
	if c.MaxConcurrent < 1 {
		c.MaxConcurrent = 1
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// Timeout devuelve el timeout por petición como time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutS) * time.Second
}

// HasUsernameSource indica si hay lista o archivo de usernames.
func (c Config) HasUsernameSource() bool {
	return len(c.Usernames) > 0 || c.UsernameFile != ""
}

// HasEmailSource indica si hay lista o archivo de emails.
func (c Config) HasEmailSource() bool {
	return len(c.Emails) > 0 || c.EmailFile != ""
}

// Helpers

func trimAll(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
