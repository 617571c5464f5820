// Package inet performs authenticated HTTPS round trips to the remote service.
package inet

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tessie-api/tessie-go/internal/log"
	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/protocol"
)

// ErrResponseTooLarge indicates the server returned more than connector.MaxResponseLength bytes.
var ErrResponseTooLarge = protocol.NewError("response exceeds maximum length", true, false)

// HttpError is returned whenever the server responds with a non-2xx status. Body holds the
// unparsed response body so callers can inspect vendor-specific error fields.
type HttpError struct {
	Code   int
	Status string
	Body   []byte
}

func (e *HttpError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	if len(e.Body) == 0 {
		return "http error: " + status
	}
	return fmt.Sprintf("http error: %s: %s", status, e.Body)
}

func (e *HttpError) MayHaveSucceeded() bool {
	if e.Code >= 400 && e.Code < 500 {
		return false
	}
	return e.Code != http.StatusServiceUnavailable
}

func (e *HttpError) Temporary() bool {
	return e.Code == http.StatusServiceUnavailable ||
		e.Code == http.StatusGatewayTimeout ||
		e.Code == http.StatusRequestTimeout ||
		e.Code == http.StatusMisdirectedRequest
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// ReadWithContext reads r until it is exhausted or ctx expires. It returns ErrResponseTooLarge
// if r holds more than limit bytes. The buffer grows with the data read.
func ReadWithContext(ctx context.Context, r io.Reader, limit int) ([]byte, error) {
	body, err := io.ReadAll(&io.LimitedReader{R: &contextReader{ctx: ctx, r: r}, N: int64(limit) + 1})
	if err != nil {
		return nil, err
	}
	if len(body) > limit {
		return nil, ErrResponseTooLarge
	}
	return body, nil
}

// Send issues a single request to url with the provided headers and returns the response body.
//
// Errors produced by client are returned unchanged. A non-2xx status yields an *HttpError. There
// are no retries.
func Send(ctx context.Context, client connector.Doer, method, url string, header http.Header) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error constructing request to %s: %w", url, err)
	}
	for key, values := range header {
		for _, v := range values {
			request.Header.Add(key, v)
		}
	}

	log.Debug("Sending %s request to %s", method, url)
	result, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()

	body, err := ReadWithContext(ctx, result.Body, connector.MaxResponseLength)
	if err != nil {
		return nil, err
	}

	log.Debug("Server returned %d: %s: %s", result.StatusCode, http.StatusText(result.StatusCode), body)
	if result.StatusCode < 200 || result.StatusCode > 299 {
		return nil, &HttpError{Code: result.StatusCode, Status: result.Status, Body: body}
	}
	return body, nil
}
