package vehicle

import (
	"context"
	"net/http"

	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
)

type StateOptions struct {
	// UseCache allows the server to answer from its most recent snapshot instead of querying
	// the vehicle.
	UseCache *bool
}

// State fetches the latest vehicle state.
func (v *Vehicle) State(ctx context.Context, opts *StateOptions) (connector.Response, error) {
	if opts == nil {
		opts = &StateOptions{}
	}
	return v.get(ctx, "state", query.Opt("use_cache", opts.UseCache))
}

// Location fetches the vehicle's coordinates and street address.
func (v *Vehicle) Location(ctx context.Context) (connector.Response, error) {
	return v.get(ctx, "location")
}

// Weather fetches the weather forecast at the vehicle's location.
func (v *Vehicle) Weather(ctx context.Context) (connector.Response, error) {
	return v.get(ctx, "weather")
}

type MapOptions struct {
	Width      *int
	Height     *int
	Zoom       *int
	MarkerSize *int
	Style      *MapStyle
}

// Map fetches an image of a map centered on the vehicle. The image is returned as received.
func (v *Vehicle) Map(ctx context.Context, opts *MapOptions) ([]byte, error) {
	if opts == nil {
		opts = &MapOptions{}
	}
	return v.gateway.SendRaw(ctx, v.request(http.MethodGet, "map",
		query.Opt("width", opts.Width),
		query.Opt("height", opts.Height),
		query.Opt("zoom", opts.Zoom),
		query.Opt("marker_size", opts.MarkerSize),
		query.Opt("style", opts.Style),
	))
}

// Status reports whether the vehicle is asleep, waiting for sleep, or awake.
func (v *Vehicle) Status(ctx context.Context) (connector.Response, error) {
	return v.get(ctx, "status")
}

type TirePressureOptions struct {
	PressureFormat *PressureFormat
	From           *int64 // Unix timestamp (seconds)
	To             *int64 // Unix timestamp (seconds)
	Interval       *int   // Seconds between samples
	Format         *Format
	Timezone       *string // IANA name, e.g. America/Los_Angeles
}

func (o *TirePressureOptions) params() []query.Param {
	if o == nil {
		return nil
	}
	return []query.Param{
		query.Opt("pressure_format", o.PressureFormat),
		query.Opt("from", o.From),
		query.Opt("to", o.To),
		query.Opt("interval", o.Interval),
		query.Opt("format", o.Format),
		query.Opt("timezone", o.Timezone),
	}
}

// TirePressure fetches current or historical tire pressures.
func (v *Vehicle) TirePressure(ctx context.Context, opts *TirePressureOptions) (connector.Response, error) {
	return v.getTable(ctx, "tire_pressure", opts.params())
}

// TirePressureCSV is like [Vehicle.TirePressure] but returns the CSV rendering of the response.
func (v *Vehicle) TirePressureCSV(ctx context.Context, opts *TirePressureOptions) ([]byte, error) {
	return v.getCSV(ctx, "tire_pressure", opts.params())
}

// Wake asks the vehicle to wake from sleep.
func (v *Vehicle) Wake(ctx context.Context) (connector.Response, error) {
	return v.post(ctx, "wake")
}
