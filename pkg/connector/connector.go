// Package connector defines the types exchanged between endpoint adapters and the request gateway.
package connector

//go:generate mockgen -destination=../../mocks/connector.go -package=mocks -mock_names=Gateway=Gateway,Doer=Doer github.com/tessie-api/tessie-go/pkg/connector Gateway,Doer

import (
	"context"
	"net/http"

	"github.com/tessie-api/tessie-go/pkg/query"
)

// MaxResponseLength caps the maximum byte-length of responses the gateway will read. Map images
// are the largest payloads the service returns.
const MaxResponseLength = 10000000

// Doer performs HTTP requests. *http.Client satisfies the interface.
//
// The Doer is owned by the caller and may be shared between gateways. Timeouts are configured on
// the Doer.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes a single call to the remote service.
type Request struct {
	Method string
	// Path is appended verbatim to the base URL and must begin with "/".
	Path   string
	Params query.Values
}

// Response is a decoded JSON object, exactly as returned by the server.
type Response map[string]interface{}

// Gateway sends authenticated requests to the remote service.
//
// Implementations must be safe for concurrent use.
type Gateway interface {
	// Send issues req and decodes the JSON object in the response body.
	Send(ctx context.Context, req *Request) (Response, error)

	// SendRaw issues req and returns the response body without decoding it.
	SendRaw(ctx context.Context, req *Request) ([]byte, error)
}
