package vehicle

import (
	"context"

	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
)

func (v *Vehicle) Lock(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "lock", opts)
}

func (v *Vehicle) Unlock(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "unlock", opts)
}

func (v *Vehicle) EnableSentryMode(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "enable_sentry", opts)
}

func (v *Vehicle) DisableSentryMode(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "disable_sentry", opts)
}

func (v *Vehicle) EnableValetMode(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "enable_valet", opts)
}

func (v *Vehicle) DisableValetMode(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "disable_valet", opts)
}

// EnableKeylessDriving allows the vehicle to be driven without a key for the next few minutes.
func (v *Vehicle) EnableKeylessDriving(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "remote_start", opts)
}

// SetSpeedLimit sets the maximum speed in miles per hour enforced while the speed limit is active.
func (v *Vehicle) SetSpeedLimit(ctx context.Context, mph int, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "set_speed_limit", opts, query.Set("mph", mph))
}

// EnableSpeedLimit activates the speed limit, protected by a four-digit pin. The pin is a string
// so leading zeros survive.
func (v *Vehicle) EnableSpeedLimit(ctx context.Context, pin string, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "enable_speed_limit", opts, query.Set("pin", pin))
}

func (v *Vehicle) DisableSpeedLimit(ctx context.Context, pin string, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "disable_speed_limit", opts, query.Set("pin", pin))
}

func (v *Vehicle) ClearSpeedLimitPIN(ctx context.Context, pin string, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "clear_speed_limit_pin", opts, query.Set("pin", pin))
}
