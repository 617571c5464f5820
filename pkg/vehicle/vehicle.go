/*
Package vehicle exposes one method per vehicle endpoint of the remote service.

A [Vehicle] pairs a VIN with a [connector.Gateway] (typically an account.Account). It holds no
other state. Every method sends one request and returns the decoded JSON response unmodified. Errors returned by the gateway are passed through unchanged.

Required arguments are positional. Optional arguments live in an options struct whose pointer
fields are sent only when non-nil; a nil options struct sends none of them, and the server's
defaults apply. Methods that issue vehicle commands also accept [CommandOptions].

Endpoints that can export CSV have a second method with a CSV suffix (e.g., [Vehicle.DrivesCSV])
that returns the response body as received. The JSON methods return [ErrCSVFormat] when asked
for [FormatCSV].

	car := acct.GetVehicle(vin)
	rsp, err := car.SetChargeLimit(ctx, 80, &vehicle.CommandOptions{
		WaitForCompletion: query.Ptr(true),
	})
*/
package vehicle

import (
	"context"
	"errors"
	"net/http"

	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
)

// A Vehicle represents a vehicle reachable through a Gateway.
//
// Vehicles are immutable and safe for concurrent use.
type Vehicle struct {
	vin     string
	gateway connector.Gateway
}

// New returns a Vehicle that sends requests for vin through gateway. The VIN is used verbatim in
// request paths.
func New(gateway connector.Gateway, vin string) *Vehicle {
	return &Vehicle{vin: vin, gateway: gateway}
}

// VIN returns the Vehicle Identification Number used in request paths.
func (v *Vehicle) VIN() string {
	return v.vin
}

func (v *Vehicle) path(resource string) string {
	return "/" + v.vin + "/" + resource
}

func (v *Vehicle) request(method, resource string, params ...query.Param) *connector.Request {
	return &connector.Request{
		Method: method,
		Path:   v.path(resource),
		Params: query.Normalize(params...),
	}
}

func (v *Vehicle) get(ctx context.Context, resource string, params ...query.Param) (connector.Response, error) {
	return v.gateway.Send(ctx, v.request(http.MethodGet, resource, params...))
}

func (v *Vehicle) post(ctx context.Context, resource string, params ...query.Param) (connector.Response, error) {
	return v.gateway.Send(ctx, v.request(http.MethodPost, resource, params...))
}

// ErrCSVFormat is returned by methods that decode JSON when the caller asks for CSV output.
var ErrCSVFormat = errors.New("csv output must be requested through the CSV variant of the method")

func csvRequested(params []query.Param) bool {
	for _, p := range params {
		if p.Key == "format" && p.Present() && p.Value == FormatCSV {
			return true
		}
	}
	return false
}

// getTable fetches a resource that the server can render as JSON or CSV.
func (v *Vehicle) getTable(ctx context.Context, resource string, params []query.Param) (connector.Response, error) {
	if csvRequested(params) {
		return nil, ErrCSVFormat
	}
	return v.get(ctx, resource, params...)
}

// getCSV fetches the CSV rendering of a resource. Any format in params is replaced.
func (v *Vehicle) getCSV(ctx context.Context, resource string, params []query.Param) ([]byte, error) {
	req := v.request(http.MethodGet, resource, params...)
	req.Params = req.Params.Merge(query.Set("format", FormatCSV))
	return v.gateway.SendRaw(ctx, req)
}

// CommandOptions controls how the server delivers a command to the vehicle.
type CommandOptions struct {
	// RetryDuration is the number of seconds the server keeps trying to reach the vehicle.
	RetryDuration *int
	// WaitForCompletion makes the server wait for the vehicle to report the result before
	// responding.
	WaitForCompletion *bool
}

func (o *CommandOptions) params() []query.Param {
	if o == nil {
		return nil
	}
	return []query.Param{
		query.Opt("retry_duration", o.RetryDuration),
		query.Opt("wait_for_completion", o.WaitForCompletion),
	}
}

func (v *Vehicle) command(ctx context.Context, name string, opts *CommandOptions, params ...query.Param) (connector.Response, error) {
	return v.post(ctx, "command/"+name, append(params, opts.params()...)...)
}
