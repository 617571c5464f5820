package vehicle

import (
	"context"

	"github.com/tessie-api/tessie-go/pkg/connector"
)

func (v *Vehicle) Honk(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "honk", opts)
}

func (v *Vehicle) FlashLights(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "flash", opts)
}

// Boombox plays a sound through the external speaker.
func (v *Vehicle) Boombox(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "remote_boombox", opts)
}

// TriggerHomelink triggers the primary HomeLink device (e.g., a garage door opener).
func (v *Vehicle) TriggerHomelink(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "trigger_homelink", opts)
}
