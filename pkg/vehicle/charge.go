// File implements endpoints related to charging and the battery.

package vehicle

import (
	"context"
	"strconv"

	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
)

type BatteryHealthOptions struct {
	DistanceFormat *DistanceFormat
}

// BatteryHealth fetches battery capacity measurements between from and to (Unix timestamps).
func (v *Vehicle) BatteryHealth(ctx context.Context, from, to int64, opts *BatteryHealthOptions) (connector.Response, error) {
	if opts == nil {
		opts = &BatteryHealthOptions{}
	}
	return v.get(ctx, "battery_health",
		query.Set("from", from),
		query.Set("to", to),
		query.Opt("distance_format", opts.DistanceFormat),
	)
}

type ChargesOptions struct {
	DistanceFormat     *DistanceFormat
	Format             *Format
	SuperchargersOnly  *bool
	OriginLatitude     *float64
	OriginLongitude    *float64
	OriginRadius       *float64
	ExcludeOrigin      *bool
	Timezone           *string
	From               *int64
	To                 *int64
	MinimumEnergyAdded *float64
}

func (o *ChargesOptions) params() []query.Param {
	if o == nil {
		return nil
	}
	return []query.Param{
		query.Opt("distance_format", o.DistanceFormat),
		query.Opt("format", o.Format),
		query.Opt("superchargers_only", o.SuperchargersOnly),
		query.Opt("origin_latitude", o.OriginLatitude),
		query.Opt("origin_longitude", o.OriginLongitude),
		query.Opt("origin_radius", o.OriginRadius),
		query.Opt("exclude_origin", o.ExcludeOrigin),
		query.Opt("timezone", o.Timezone),
		query.Opt("from", o.From),
		query.Opt("to", o.To),
		query.Opt("minimum_energy_added", o.MinimumEnergyAdded),
	}
}

// Charges lists charging sessions.
func (v *Vehicle) Charges(ctx context.Context, opts *ChargesOptions) (connector.Response, error) {
	return v.getTable(ctx, "charges", opts.params())
}

// ChargesCSV is like [Vehicle.Charges] but returns the CSV rendering of the response.
func (v *Vehicle) ChargesCSV(ctx context.Context, opts *ChargesOptions) ([]byte, error) {
	return v.getCSV(ctx, "charges", opts.params())
}

// SetChargeCost records the cost of the charging session identified by chargeID.
func (v *Vehicle) SetChargeCost(ctx context.Context, chargeID int64, cost float64) (connector.Response, error) {
	return v.post(ctx, "charges/"+strconv.FormatInt(chargeID, 10)+"/set_cost", query.Set("cost", cost))
}

func (v *Vehicle) StartCharging(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "start_charging", opts)
}

func (v *Vehicle) StopCharging(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "stop_charging", opts)
}

func (v *Vehicle) SetChargeLimit(ctx context.Context, percent int, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "set_charge_limit", opts, query.Set("percent", percent))
}

func (v *Vehicle) SetChargingAmps(ctx context.Context, amps int, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "set_charging_amps", opts, query.Set("amps", amps))
}

// OpenChargePort opens the charge port, or unlocks it if a cable is connected.
func (v *Vehicle) OpenChargePort(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "open_charge_port", opts)
}

func (v *Vehicle) CloseChargePort(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "close_charge_port", opts)
}

// SetScheduledCharging enables or disables scheduled charging. The start time is given in minutes
// after midnight, local to the vehicle.
func (v *Vehicle) SetScheduledCharging(ctx context.Context, enable bool, minutesAfterMidnight int, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "set_scheduled_charging", opts,
		query.Set("enable", enable),
		query.Set("time", minutesAfterMidnight),
	)
}

// DepartureOptions holds the optional settings of a scheduled departure. Times are minutes after
// midnight.
type DepartureOptions struct {
	CommandOptions
	PreconditioningEnabled      *bool
	PreconditioningWeekdaysOnly *bool
	OffPeakChargingEnabled      *bool
	OffPeakChargingWeekdaysOnly *bool
	EndOffPeakTime              *int
}

// SetScheduledDeparture enables or disables a scheduled departure at departureTime (minutes after
// midnight).
func (v *Vehicle) SetScheduledDeparture(ctx context.Context, enable bool, departureTime int, opts *DepartureOptions) (connector.Response, error) {
	if opts == nil {
		opts = &DepartureOptions{}
	}
	return v.command(ctx, "set_scheduled_departure", &opts.CommandOptions,
		query.Set("enable", enable),
		query.Set("departure_time", departureTime),
		query.Opt("preconditioning_enabled", opts.PreconditioningEnabled),
		query.Opt("preconditioning_weekdays_only", opts.PreconditioningWeekdaysOnly),
		query.Opt("off_peak_charging_enabled", opts.OffPeakChargingEnabled),
		query.Opt("off_peak_charging_weekdays_only", opts.OffPeakChargingWeekdaysOnly),
		query.Opt("end_off_peak_time", opts.EndOffPeakTime),
	)
}
