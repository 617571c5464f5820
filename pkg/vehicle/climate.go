// File implements climate control commands.

package vehicle

import (
	"context"

	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
)

// StartClimate starts preconditioning the cabin.
func (v *Vehicle) StartClimate(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "start_climate", opts)
}

func (v *Vehicle) StopClimate(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "stop_climate", opts)
}

// SetTemperature sets the driver and passenger cabin temperature in Celsius.
func (v *Vehicle) SetTemperature(ctx context.Context, temperature float64, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "set_temperatures", opts, query.Set("temperature", temperature))
}

// SetSeatHeat sets the heater level (0 to 3) of seat.
func (v *Vehicle) SetSeatHeat(ctx context.Context, seat Seat, level int, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "set_seat_heat", opts,
		query.Set("seat", seat),
		query.Set("level", level),
	)
}

func (v *Vehicle) StartDefrost(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "start_max_defrost", opts)
}

func (v *Vehicle) StopDefrost(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "stop_max_defrost", opts)
}

func (v *Vehicle) StartSteeringWheelHeater(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "start_steering_wheel_heater", opts)
}

func (v *Vehicle) StopSteeringWheelHeater(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "stop_steering_wheel_heater", opts)
}

func (v *Vehicle) SetBioweaponDefenseMode(ctx context.Context, on bool, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "set_bioweapon_mode", opts, query.Set("on", on))
}

// SetClimateKeeperMode keeps climate control running after the driver leaves the vehicle.
func (v *Vehicle) SetClimateKeeperMode(ctx context.Context, mode ClimateKeeperMode, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "set_climate_keeper_mode", opts, query.Set("mode", mode))
}
