package engine

import (
	"context"

	"blackbird/internal/catalog"
	"blackbird/internal/core/domain"
	"blackbird/internal/core/ports"
	"blackbird/internal/platform/errors"
	"blackbird/internal/platform/httpclient"
	"blackbird/internal/platform/logx"
)

// checker verifica un identificador en sitios individuales.
type checker struct {
	client  *httpclient.Client
	id      domain.Identifier
	session string
	opts    ports.VerifyOptions
	logger  logx.Logger
}

// check hace la petición de un sitio y aplica su regla de coincidencia.
// Los errores de red quedan en el CheckOutcome y nunca se propagan.
func (c *checker) check(ctx context.Context, site catalog.Site) (*domain.FoundAccount, ports.CheckOutcome) {
	account := site.Account(c.id.Value)
	outcome := ports.CheckOutcome{
		Site: site.Name,
		URL:  site.PrettyURL(account),
	}

	resp, err := c.client.Do(ctx, httpclient.Request{
		Method:  site.HTTPMethod(),
		URL:     site.CheckURL(account),
		Body:    site.Body(account),
		Headers: site.RequestHeaders(account, c.session),
	})
	if err != nil {
		c.logger.Debug("site check failed", "site", site.Name, "reason", failureReason(err), "error", err.Error())
		outcome.Err = err
		return nil, outcome
	}

	outcome.Status = resp.StatusCode
	if !site.Matches(resp.StatusCode, resp.Body) {
		return nil, outcome
	}

	found := &domain.FoundAccount{
		Site:     site.Name,
		Category: site.Category,
		URL:      outcome.URL,
		Status:   resp.StatusCode,
	}
	if c.id.Kind == domain.KindEmail {
		addEmailMetadata(found, site, c.id.Value, resp.Body)
	}
	if c.opts.KeepContent {
		found.Content = resp.Body
	}
	if c.opts.Dump {
		if path, err := writeDump(c.opts.DumpDir, site.Name, resp.Body); err != nil {
			c.logger.Warn("dump failed", "site", site.Name, "error", err.Error())
		} else {
			c.logger.Debug("dump written", "site", site.Name, "path", path)
		}
	}

	outcome.Found = true
	outcome.Metadata = found.Metadata
	return found, outcome
}

// failureReason resume un error de red para logs.
func failureReason(err error) string {
	switch {
	case errors.IsTimeout(err):
		return "timeout"
	case errors.IsRateLimit(err):
		return "rate_limit"
	case errors.IsConnectionFailed(err):
		return "connection"
	default:
		return "other"
	}
}
