// internal/infrastructure/bookkeeping/client.go
package bookkeeping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/validation"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 10 << 20

// Client talks to the bookkeeping JSON API. Every payload is decoded and
// validated before it is handed to the domain.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	perPage      int
	maxPages     int
	serviceToken string
	validate     *validator.Validate
	log          logrus.FieldLogger
}

// NewClient creates a new bookkeeping client
func NewClient(cfg *config.Config, log logrus.FieldLogger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.Bookkeeping.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid bookkeeping base url: %w", err)
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   cfg.Bookkeeping.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		perPage:      cfg.Bookkeeping.PerPage,
		maxPages:     cfg.Bookkeeping.MaxPages,
		serviceToken: cfg.Bookkeeping.ServiceToken,
		validate:     validation.Default(),
		log:          log.WithField("component", "bookkeeping"),
	}, nil
}

// errorBody is the error shape returned by the API
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	if b.Error != "" {
		return b.Error
	}
	for _, msgs := range b.Errors {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

// request describes one API call
type request struct {
	op       string
	method   string
	path     string
	query    url.Values
	body     interface{}
	fallback string // message when the API gives none
}

// do sends the request and returns the raw response body
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		endpoint.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"method": r.method,
			"path":   r.path,
		}).Warn("Bookkeeping request failed")
		return nil, apperr.Remote(r.op, r.fallback, 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperr.Remote(r.op, r.fallback, resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.remoteError(r, resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) token(ctx context.Context) string {
	if token := auth.TokenFrom(ctx); token != "" {
		return token
	}
	return c.serviceToken
}

func (c *Client) remoteError(r request, status int, data []byte) error {
	var body errorBody
	_ = json.Unmarshal(data, &body)

	message := body.text()
	if message == "" {
		message = r.fallback
	}

	c.log.WithFields(logrus.Fields{
		"method": r.method,
		"path":   r.path,
		"status": status,
	}).Debug("Bookkeeping API returned an error")

	switch status {
	case http.StatusUnauthorized:
		if body.text() == "" {
			message = "Your session has expired. Please log in again."
		}
		return &apperr.Error{Op: r.op, Kind: apperr.KindUnauthorized, Message: message, Status: status}
	case http.StatusForbidden:
		if body.text() == "" {
			message = "You are not allowed to do that."
		}
		return &apperr.Error{Op: r.op, Kind: apperr.KindForbidden, Message: message, Status: status}
	case http.StatusNotFound:
		if body.text() == "" {
			message = "Not found"
		}
		return &apperr.Error{Op: r.op, Kind: apperr.KindNotFound, Message: message, Status: status}
	default:
		return apperr.Remote(r.op, message, status, nil)
	}
}

// unwrap strips an optional {"data": ...} envelope
func unwrap(data []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return trimmed
	}
	if inner, ok := envelope["data"]; ok {
		return inner
	}
	return trimmed
}

// decodeOne decodes and validates a single object
func decodeOne[T any](c *Client, op string, data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(unwrap(data), &out); err != nil {
		return nil, apperr.Decode(op, err)
	}
	if err := c.validate.Struct(&out); err != nil {
		return nil, apperr.Decode(op, errors.New(validation.Message(err)))
	}
	return &out, nil
}

// decodeList decodes and validates every element of a list
func decodeList[T any](c *Client, op string, raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, apperr.Decode(op, err)
	}
	for i := range out {
		if err := c.validate.Struct(&out[i]); err != nil {
			return nil, apperr.Decode(op, fmt.Errorf("item %d: %s", i, validation.Message(err)))
		}
	}
	return out, nil
}

// get fetches and decodes a single object
func get[T any](ctx context.Context, c *Client, r request) (*T, error) {
	r.method = http.MethodGet
	data, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](c, r.op, data)
}

// send issues a write and decodes the returned object
func send[T any](ctx context.Context, c *Client, r request) (*T, error) {
	data, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](c, r.op, data)
}

// listPage is a page of a paginated list
type listPage struct {
	Data        json.RawMessage `json:"data"`
	CurrentPage int             `json:"current_page"`
	LastPage    int             `json:"last_page"`
	Meta        *struct {
		CurrentPage int `json:"current_page"`
		LastPage    int `json:"last_page"`
	} `json:"meta"`
}

func (p listPage) position() (current, last int) {
	if p.Meta != nil {
		return p.Meta.CurrentPage, p.Meta.LastPage
	}
	return p.CurrentPage, p.LastPage
}

// list fetches a list, following pagination up to maxPages
func list[T any](ctx context.Context, c *Client, r request) ([]T, error) {
	r.method = http.MethodGet
	query := url.Values{}
	for k, v := range r.query {
		query[k] = v
	}
	if query.Get("per_page") == "" {
		query.Set("per_page", strconv.Itoa(c.perPage))
	}

	var all []T
	for pageNum := 1; pageNum <= c.maxPages; pageNum++ {
		query.Set("page", strconv.Itoa(pageNum))
		r.query = query

		data, err := c.do(ctx, r)
		if err != nil {
			return nil, err
		}

		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			// Unpaginated endpoint
			return decodeList[T](c, r.op, trimmed)
		}

		var page listPage
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, apperr.Decode(r.op, err)
		}
		items, err := decodeList[T](c, r.op, page.Data)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		current, last := page.position()
		if last == 0 || current >= last || len(items) == 0 {
			return all, nil
		}
		if pageNum == c.maxPages {
			c.log.WithFields(logrus.Fields{
				"path":      r.path,
				"last_page": last,
				"max_pages": c.maxPages,
			}).Warn("Stopped paging before the last page")
		}
	}

	if all == nil {
		all = []T{}
	}
	return all, nil
}
