// Package grobid provides an HTTP adapter for a GROBID-style structured
// extraction service implementing paperparse.StructuredExtractor.
package grobid

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kmitrowski/paperparse"
)

// DefaultTimeout is the default timeout for a single extraction request.
// Structured extraction of a long article can take tens of seconds.
const DefaultTimeout = 60 * time.Second

const (
	processPath = "/api/processFulltextDocument"
	alivePath   = "/api/isalive"
)

// processFields are the form fields sent along with the PDF payload. They
// ask the service for consolidated header metadata and fully resolved
// references in its markup output.
var processFields = [][2]string{
	{"consolidateHeader", "1"},
	{"consolidateCitations", "1"},
	{"generateIDs", "1"},
	{"includeRawCitations", "1"},
	{"includeRawAffiliations", "1"},
	{"teiCoordinates", "1"},
}

// Ensure Client implements paperparse.StructuredExtractor at compile time.
var _ paperparse.StructuredExtractor = (*Client)(nil)

// Client submits PDF documents to a structured-extraction service over HTTP.
// A failed request is terminal; the client never retries.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (60s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets the underlying HTTP client. The client's own timeout,
// if any, is left untouched; the per-request timeout is applied via context.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new Client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	return c
}

// ProcessFulltext sends the PDF payload to the service and returns the raw
// markup response body.
//
// Classification: a 2xx response with a non-empty body is returned verbatim;
// a 2xx response with an empty body is EEMPTY; a non-2xx status or transport
// failure is EUNAVAILABLE; hitting the request timeout is ETIMEOUT.
func (c *Client) ProcessFulltext(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("input", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}
	for _, field := range processFields {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+processPath, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", classifyTransportError(err, c.timeout)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", paperparse.Errorf(paperparse.EUNAVAILABLE, "structured extraction service returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err, c.timeout)
	}

	markup := string(body)
	if strings.TrimSpace(markup) == "" {
		return "", paperparse.Errorf(paperparse.EEMPTY, "structured extraction service returned an empty document")
	}

	return markup, nil
}

// Ping checks that the service is reachable and alive. It is meant for the
// fatal configuration check at batch start, before any document is sent.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+alivePath, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransportError(err, c.timeout)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return paperparse.Errorf(paperparse.EUNAVAILABLE, "structured extraction service returned HTTP %d", resp.StatusCode)
	}

	return nil
}

// classifyTransportError maps a transport-level failure onto the extraction
// error taxonomy: timeouts become ETIMEOUT, everything else EUNAVAILABLE.
func classifyTransportError(err error, timeout time.Duration) error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return paperparse.Errorf(paperparse.ETIMEOUT, "structured extraction request timed out after %s", timeout)
	}
	return paperparse.Errorf(paperparse.EUNAVAILABLE, "structured extraction service unreachable: %v", err)
}
