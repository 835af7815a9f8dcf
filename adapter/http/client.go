package rest

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/forest33/srun/business/entity"
	"github.com/forest33/srun/pkg/logger"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	maxBodySize     = 1 << 20
)

// Client sends forms to the portal
type Client struct {
	cfg  *Config
	log  *logger.Logger
	http *http.Client
}

type Config struct {
	// Timeout zero means no limit
	Timeout   time.Duration
	UserAgent string
}

var _ entity.PortalTransport = (*Client)(nil)

func New(cfg *Config, log *logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		log: log.Duplicate(log.With().Str("layer", "http").Logger()),
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// PostForm posts form to rawURL and returns the whole response body.
// Any status code is accepted, the portal reports errors in the body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", entity.NewTransportError(err)
	}
	req.Header.Set("Content-Type", contentTypeForm)
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	c.log.Debug().
		Str("url", rawURL).
		Int("size", int(req.ContentLength)).
		Msg("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", entity.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", entity.NewTransportError(err)
	}

	c.log.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Int("size", len(body)).
		Msg("received response")

	return string(body), nil
}
