package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Emansafdar26/buysmart-client/internal/config"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/session"
	"github.com/Emansafdar26/buysmart-client/pkg/util"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Envelope result codes used by the backend.
const (
	CodeFailure = 0
	CodeSuccess = 1
)

// Result is the canonical, normalized form of a backend response. The
// raw wire format wraps payloads in either a `detail` or a `resp` key;
// nothing above the gateway ever sees that difference.
type Result struct {
	Code        int
	Data        json.RawMessage
	Error       string
	Message     string
	AccessToken string
}

// Decode unmarshals the payload into out on success, or returns the
// application failure as a models.AppError. Pass nil when the caller
// only cares about success.
func (r *Result) Decode(out any) error {
	if r.Code != CodeSuccess {
		msg := r.Error
		if msg == "" {
			msg = r.Message
		}
		return &models.AppError{Code: r.Code, Message: msg}
	}
	if out == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// Client issues authenticated JSON requests against the backend API.
// Transport failures (network, timeout, non-2xx, malformed body) come
// back as plain errors; application failures live in the Result code.
type Client interface {
	Get(ctx context.Context, path string) (*Result, error)
	Post(ctx context.Context, path string, body any) (*Result, error)
}

type payload struct {
	Code        int             `json:"code"`
	Data        json.RawMessage `json:"data,omitempty"`
	Error       string          `json:"error,omitempty"`
	Message     string          `json:"message,omitempty"`
	AccessToken string          `json:"access_token,omitempty"`
}

type envelope struct {
	Detail *payload `json:"detail"`
	Resp   *payload `json:"resp"`
}

type client struct {
	http    *resty.Client
	session *session.Session
	metrics *prometheus.HistogramVec
}

func NewClient(conf *config.Config, sess *session.Session) (Client, error) {
	metrics, err := util.GetHistogramVec("storefront_api_request_duration_seconds", "method", "outcome")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}

	httpc := util.NewRestyClient(conf.Backend.Timeout).
		SetBaseURL(conf.Backend.BaseURL).
		SetHeader("Content-Type", "application/json")

	return &client{
		http:    httpc,
		session: sess,
		metrics: metrics,
	}, nil
}

func (c *client) Get(ctx context.Context, path string) (*Result, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *client) Post(ctx context.Context, path string, body any) (*Result, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *client) do(ctx context.Context, method, path string, body any) (*Result, error) {
	req := c.http.R().SetContext(ctx)
	if token := c.session.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	outcome := "ok"
	defer func() {
		c.metrics.WithLabelValues(method, outcome).Observe(time.Since(start).Seconds())
	}()

	if err != nil {
		outcome = "transport_error"
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		outcome = "http_error"
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		outcome = "decode_error"
		return nil, fmt.Errorf("decode response for %s %s: %w", method, path, err)
	}

	p := env.Detail
	if p == nil {
		p = env.Resp
	}
	if p == nil {
		outcome = "decode_error"
		return nil, fmt.Errorf("%s %s: response has no detail or resp envelope", method, path)
	}

	if p.Code != CodeSuccess {
		outcome = "app_error"
	}
	return &Result{
		Code:        p.Code,
		Data:        p.Data,
		Error:       p.Error,
		Message:     p.Message,
		AccessToken: p.AccessToken,
	}, nil
}
