// File implements commands that actuate windows, the sunroof and trunks.

package vehicle

import (
	"context"

	"github.com/tessie-api/tessie-go/pkg/connector"
)

func (v *Vehicle) VentWindows(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "vent_windows", opts)
}

func (v *Vehicle) CloseWindows(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "close_windows", opts)
}

func (v *Vehicle) VentSunroof(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "vent_sunroof", opts)
}

func (v *Vehicle) CloseSunroof(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "close_sunroof", opts)
}

func (v *Vehicle) OpenFrontTrunk(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "activate_front_trunk", opts)
}

// OpenCloseRearTrunk toggles the rear trunk. Vehicles without a powered trunk can only open it.
func (v *Vehicle) OpenCloseRearTrunk(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "activate_rear_trunk", opts)
}
