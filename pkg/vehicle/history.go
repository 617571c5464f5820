// File implements endpoints that query recorded drives, idle periods and vehicle states.
//
// Timestamps are Unix seconds. Timezones are IANA names.

package vehicle

import (
	"context"

	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
)

type DrivesOptions struct {
	DistanceFormat       *DistanceFormat
	TemperatureFormat    *TemperatureFormat
	Timezone             *string
	From                 *int64
	To                   *int64
	OriginLatitude       *float64
	OriginLongitude      *float64
	OriginRadius         *float64
	ExcludeOrigin        *bool
	DestinationLatitude  *float64
	DestinationLongitude *float64
	DestinationRadius    *float64
	ExcludeDestination   *bool
	Tag                  *string
	ExcludeTag           *bool
	DriverProfile        *string
	ExcludeDriverProfile *bool
	MinimumDistance      *float64
	Format               *Format
}

func (o *DrivesOptions) params() []query.Param {
	if o == nil {
		return nil
	}
	return []query.Param{
		query.Opt("distance_format", o.DistanceFormat),
		query.Opt("temperature_format", o.TemperatureFormat),
		query.Opt("timezone", o.Timezone),
		query.Opt("from", o.From),
		query.Opt("to", o.To),
		query.Opt("origin_latitude", o.OriginLatitude),
		query.Opt("origin_longitude", o.OriginLongitude),
		query.Opt("origin_radius", o.OriginRadius),
		query.Opt("exclude_origin", o.ExcludeOrigin),
		query.Opt("destination_latitude", o.DestinationLatitude),
		query.Opt("destination_longitude", o.DestinationLongitude),
		query.Opt("destination_radius", o.DestinationRadius),
		query.Opt("exclude_destination", o.ExcludeDestination),
		query.Opt("tag", o.Tag),
		query.Opt("exclude_tag", o.ExcludeTag),
		query.Opt("driver_profile", o.DriverProfile),
		query.Opt("exclude_driver_profile", o.ExcludeDriverProfile),
		query.Opt("minimum_distance", o.MinimumDistance),
		query.Opt("format", o.Format),
	}
}

func (v *Vehicle) Drives(ctx context.Context, opts *DrivesOptions) (connector.Response, error) {
	return v.getTable(ctx, "drives", opts.params())
}

// DrivesCSV is like [Vehicle.Drives] but returns the CSV rendering of the response.
func (v *Vehicle) DrivesCSV(ctx context.Context, opts *DrivesOptions) ([]byte, error) {
	return v.getCSV(ctx, "drives", opts.params())
}

type DrivingPathOptions struct {
	From     *int64
	To       *int64
	Separate *bool // Split the path into one segment per drive.
	Simplify *bool
	Details  *bool
}

// DrivingPath fetches the coordinates the vehicle drove through.
func (v *Vehicle) DrivingPath(ctx context.Context, opts *DrivingPathOptions) (connector.Response, error) {
	if opts == nil {
		opts = &DrivingPathOptions{}
	}
	return v.get(ctx, "path",
		query.Opt("from", opts.From),
		query.Opt("to", opts.To),
		query.Opt("separate", opts.Separate),
		query.Opt("simplify", opts.Simplify),
		query.Opt("details", opts.Details),
	)
}

// SetDriveTag tags drives, a comma-separated list of drive IDs, with tag.
func (v *Vehicle) SetDriveTag(ctx context.Context, drives string, tag string) (connector.Response, error) {
	return v.post(ctx, "drives/set_tag",
		query.Set("drives", drives),
		query.Set("tag", tag),
	)
}

type HistoricalStatesOptions struct {
	From              *int64
	To                *int64
	Interval          *int // Seconds between samples
	Condense          *bool
	Timezone          *string
	DistanceFormat    *DistanceFormat
	TemperatureFormat *TemperatureFormat
	Format            *Format
}

func (o *HistoricalStatesOptions) params() []query.Param {
	if o == nil {
		return nil
	}
	return []query.Param{
		query.Opt("from", o.From),
		query.Opt("to", o.To),
		query.Opt("interval", o.Interval),
		query.Opt("condense", o.Condense),
		query.Opt("timezone", o.Timezone),
		query.Opt("distance_format", o.DistanceFormat),
		query.Opt("temperature_format", o.TemperatureFormat),
		query.Opt("format", o.Format),
	}
}

func (v *Vehicle) HistoricalStates(ctx context.Context, opts *HistoricalStatesOptions) (connector.Response, error) {
	return v.getTable(ctx, "states", opts.params())
}

// HistoricalStatesCSV is like [Vehicle.HistoricalStates] but returns the CSV rendering of the response.
func (v *Vehicle) HistoricalStatesCSV(ctx context.Context, opts *HistoricalStatesOptions) ([]byte, error) {
	return v.getCSV(ctx, "states", opts.params())
}

// LastIdleState fetches the state recorded when the vehicle last became idle.
func (v *Vehicle) LastIdleState(ctx context.Context) (connector.Response, error) {
	return v.get(ctx, "last_idle_state")
}

type ConsumptionOptions struct {
	DistanceFormat *DistanceFormat
}

// ConsumptionSinceCharge fetches energy use since the vehicle was last charged.
func (v *Vehicle) ConsumptionSinceCharge(ctx context.Context, opts *ConsumptionOptions) (connector.Response, error) {
	if opts == nil {
		opts = &ConsumptionOptions{}
	}
	return v.get(ctx, "consumption_since_charge", query.Opt("distance_format", opts.DistanceFormat))
}

type IdlesOptions struct {
	DistanceFormat  *DistanceFormat
	Format          *Format
	Timezone        *string
	From            *int64
	To              *int64
	OriginLatitude  *float64
	OriginLongitude *float64
	OriginRadius    *float64
	ExcludeOrigin   *bool
}

func (o *IdlesOptions) params() []query.Param {
	if o == nil {
		return nil
	}
	return []query.Param{
		query.Opt("distance_format", o.DistanceFormat),
		query.Opt("format", o.Format),
		query.Opt("timezone", o.Timezone),
		query.Opt("from", o.From),
		query.Opt("to", o.To),
		query.Opt("origin_latitude", o.OriginLatitude),
		query.Opt("origin_longitude", o.OriginLongitude),
		query.Opt("origin_radius", o.OriginRadius),
		query.Opt("exclude_origin", o.ExcludeOrigin),
	}
}

// Idles lists periods during which the vehicle was parked.
func (v *Vehicle) Idles(ctx context.Context, opts *IdlesOptions) (connector.Response, error) {
	return v.getTable(ctx, "idles", opts.params())
}

// IdlesCSV is like [Vehicle.Idles] but returns the CSV rendering of the response.
func (v *Vehicle) IdlesCSV(ctx context.Context, opts *IdlesOptions) ([]byte, error) {
	return v.getCSV(ctx, "idles", opts.params())
}
