// internal/platform/config/validate.go
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"blackbird/internal/core/domain"
	inputs "blackbird/internal/platform/validator"
)

var (
	rulesOnce  sync.Once
	rules      *validator.Validate
	translator ut.Translator
)

// structRules inicializa una única vez el validador con mensajes en inglés y nombres yaml.
func structRules() (*validator.Validate, ut.Translator) {
	rulesOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerTag(v, trans, "proxyurl", "{0} must be an http, https or socks5 URL", inputs.IsProxyURL)
		registerTag(v, trans, "username", "{0} must be a username without spaces or slashes", inputs.IsUsername)

		rules = v
		translator = trans
	})
	return rules, translator
}

// registerTag registra una regla sobre strings junto con su mensaje.
func registerTag(v *validator.Validate, trans ut.Translator, tag, msg string, fn func(string) bool) {
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		},
	)
}

// Validate verifica la configuración y retorna una copia resuelta, con las listas
// de los archivos ya leídas. Cualquier fallo es un *domain.ConfigurationError.
// No hace I/O de red.
func Validate(cfg Config) (Config, error) {
	if !cfg.HasUsernameSource() && !cfg.HasEmailSource() {
		return cfg, domain.NewConfigurationError("username", domain.ErrNoIdentifiers)
	}
	if cfg.Permutation.Enabled() && !cfg.HasUsernameSource() {
		return cfg, domain.NewConfigurationError("permutation", domain.ErrPermuteWithoutUsername)
	}
	if len(cfg.Usernames) > 0 && cfg.UsernameFile != "" {
		return cfg, domain.NewConfigurationError("username-file", domain.ErrConflictingSources)
	}
	if len(cfg.Emails) > 0 && cfg.EmailFile != "" {
		return cfg, domain.NewConfigurationError("email-file", domain.ErrConflictingSources)
	}

	resolved := cfg
	if cfg.UsernameFile != "" {
		list, err := ReadList(cfg.UsernameFile)
		if err != nil {
			return cfg, domain.NewConfigurationError("username-file", err)
		}
		resolved.Usernames = list
	}
	if cfg.EmailFile != "" {
		list, err := ReadList(cfg.EmailFile)
		if err != nil {
			return cfg, domain.NewConfigurationError("email-file", err)
		}
		resolved.Emails = list
	}

	resolved.Usernames = dedupe(resolved.Usernames, inputs.NormalizeUsername)
	resolved.Emails = dedupe(resolved.Emails, inputs.NormalizeEmail)

	// los archivos pueden no aportar ningún identificador utilizable
	if len(resolved.Usernames) == 0 && len(resolved.Emails) == 0 {
		return cfg, domain.NewConfigurationError("username", domain.ErrNoIdentifiers)
	}
	if cfg.Permutation.Enabled() && len(resolved.Usernames) == 0 {
		return cfg, domain.NewConfigurationError("permutation", domain.ErrPermuteWithoutUsername)
	}

	v, trans := structRules()
	if err := v.Struct(resolved); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return cfg, domain.NewConfigurationError(fe.Field(),
				fmt.Errorf("%w: %s", domain.ErrInvalidConfig, fe.Translate(trans)))
		}
		return cfg, domain.NewConfigurationError("", fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err))
	}

	return resolved, nil
}

// ReadList lee un identificador por línea, ignorando líneas vacías y comentarios (#).
// Conserva el orden y descarta duplicados.
func ReadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", domain.ErrUnreadableFile, path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if inputs.IsEmpty(line) || inputs.IsComment(line) {
			continue
		}
		out = append(out, strings.TrimSpace(line))
	}
	return dedupe(out, strings.TrimSpace), nil
}

func dedupe(values []string, norm func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = norm(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
