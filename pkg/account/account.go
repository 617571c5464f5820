package account

import (
	"bytes"
	"context"
	_ "embed" // Used to embed version for use with user agent
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/tessie-api/tessie-go/internal/log"
	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/connector/inet"
	"github.com/tessie-api/tessie-go/pkg/protocol"
	"github.com/tessie-api/tessie-go/pkg/query"
	"github.com/tessie-api/tessie-go/pkg/vehicle"
)

var (
	//go:embed version.txt
	libraryVersion string
)

// DefaultBaseURL is the scheme and host every request is sent to unless Config.BaseURL overrides it.
const DefaultBaseURL = "https://api.tessie.com"

func buildUserAgent(app string) string {
	library := strings.TrimSpace("tessie-go/" + libraryVersion)
	build, ok := debug.ReadBuildInfo()
	if !ok {
		if app != "" {
			return fmt.Sprintf("%s %s", app, library)
		}
		return library
	}
	path := strings.Split(build.Path, "/")
	if len(path) == 0 {
		return library
	}

	if app == "" {
		app = path[len(path)-1]
		var version string
		if build.Main.Version != "(devel)" && build.Main.Version != "" {
			version = build.Main.Version
		} else {
			for _, info := range build.Settings {
				if info.Key == "vcs.revision" {
					if len(info.Value) > 8 {
						version = info.Value[0:8]
					}
					break
				}
			}
		}

		if version != "" {
			app = fmt.Sprintf("%s/%s", app, version)
		}
	}
	if app == "" {
		return library
	}

	return fmt.Sprintf("%s %s", app, library)
}

// Config holds the settings shared by every request an [Account] sends.
type Config struct {
	// BaseURL is the scheme and host requests are sent to. Paths are appended verbatim.
	// Defaults to DefaultBaseURL.
	BaseURL string
	// APIKey is the bearer credential attached to every request.
	APIKey string
	// UserAgent identifies the application. The library version is appended to it.
	UserAgent string
}

// Account sends authenticated requests to the remote service. It implements connector.Gateway.
//
// An Account is immutable after construction and safe for concurrent use.
type Account struct {
	config     Config
	authHeader string
	client     connector.Doer
}

// New returns an [Account] that sends requests through client.
//
// The caller retains ownership of client; the Account never closes it. If client is nil, a new
// http.Client with default settings is used.
func New(config Config, client connector.Doer) (*Account, error) {
	key := strings.TrimSpace(config.APIKey)
	if key == "" {
		return nil, protocol.ErrNoCredential
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	config.APIKey = key
	config.UserAgent = buildUserAgent(config.UserAgent)
	if client == nil {
		client = &http.Client{}
	}
	return &Account{
		config:     config,
		authHeader: "Bearer " + key,
		client:     client,
	}, nil
}

// Config returns a copy of the configuration a was created with, after defaults were applied.
func (a *Account) Config() Config {
	return a.config
}

// Credential returns the API key wrapped for inspection.
func (a *Account) Credential() Credential {
	return Credential(a.config.APIKey)
}

func (a *Account) url(req *connector.Request) string {
	url := a.config.BaseURL + req.Path
	if encoded := req.Params.Encode(); encoded != "" {
		url += "?" + encoded
	}
	return url
}

func (a *Account) header() http.Header {
	header := http.Header{}
	header.Set("Authorization", a.authHeader)
	header.Set("Content-Type", "application/json")
	header.Set("User-Agent", a.config.UserAgent)
	return header
}

// SendRaw sends req and returns the body of a successful response.
func (a *Account) SendRaw(ctx context.Context, req *connector.Request) ([]byte, error) {
	return inet.Send(ctx, a.client, req.Method, a.url(req), a.header())
}

// Send sends req and decodes the JSON object in the response body. Numbers are decoded as
// json.Number so that they are preserved exactly. A body that is not exactly one JSON object
// yields protocol.ErrBadResponse.
func (a *Account) Send(ctx context.Context, req *connector.Request) (connector.Response, error) {
	body, err := a.SendRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	var rsp connector.Response
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&rsp); err != nil {
		log.Debug("Invalid server response (%d bytes): %s", len(body), body)
		return nil, fmt.Errorf("%w: %s", protocol.ErrBadResponse, err)
	}
	if rsp == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", protocol.ErrBadResponse)
	}
	if _, err := decoder.Token(); err != io.EOF {
		log.Debug("Trailing data in server response (%d bytes): %s", len(body), body)
		return nil, fmt.Errorf("%w: unexpected data after JSON object", protocol.ErrBadResponse)
	}
	return rsp, nil
}

// Get sends an HTTP GET request to path.
//
// The path should begin with "/" (e.g., "/5YJ3E1EA7KF000000/state"); the host is determined by
// Config.BaseURL.
func (a *Account) Get(ctx context.Context, path string, params query.Values) (connector.Response, error) {
	return a.Send(ctx, &connector.Request{Method: http.MethodGet, Path: path, Params: params})
}

// Post sends an HTTP POST request to path. Parameters are sent in the query string.
func (a *Account) Post(ctx context.Context, path string, params query.Values) (connector.Response, error) {
	return a.Send(ctx, &connector.Request{Method: http.MethodPost, Path: path, Params: params})
}

// GetVehicle returns a handle for sending requests about the vehicle with the provided vin.
//
// The handle holds no state besides vin; the VIN is not checked against the account.
func (a *Account) GetVehicle(vin string) *vehicle.Vehicle {
	return vehicle.New(a, vin)
}

// AllVehiclesOptions filters [Account.AllVehicles].
type AllVehiclesOptions struct {
	OnlyActive *bool
}

// AllVehicles returns the latest state of every vehicle on the account.
func (a *Account) AllVehicles(ctx context.Context, opts *AllVehiclesOptions) (connector.Response, error) {
	if opts == nil {
		opts = &AllVehiclesOptions{}
	}
	return a.Get(ctx, "/vehicles", query.Normalize(query.Opt("only_active", opts.OnlyActive)))
}
