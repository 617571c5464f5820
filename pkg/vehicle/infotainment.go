package vehicle

import (
	"context"

	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
)

type ShareOptions struct {
	CommandOptions
	Locale *string // e.g. en-US
}

// Share sends an address, coordinates or URL to the vehicle's navigation system.
func (v *Vehicle) Share(ctx context.Context, value string, opts *ShareOptions) (connector.Response, error) {
	if opts == nil {
		opts = &ShareOptions{}
	}
	return v.command(ctx, "share", &opts.CommandOptions,
		query.Set("value", value),
		query.Opt("locale", opts.Locale),
	)
}

// ScheduleSoftwareUpdate installs a downloaded update after inSeconds seconds.
func (v *Vehicle) ScheduleSoftwareUpdate(ctx context.Context, inSeconds int, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "schedule_software_update", opts, query.Set("in_seconds", inSeconds))
}

func (v *Vehicle) CancelSoftwareUpdate(ctx context.Context, opts *CommandOptions) (connector.Response, error) {
	return v.command(ctx, "cancel_software_update", opts)
}
