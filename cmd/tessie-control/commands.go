package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tessie-api/tessie-go/pkg/account"
	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
	"github.com/tessie-api/tessie-go/pkg/vehicle"
)

var (
	ErrCommandLineArgs = errors.New("invalid command line arguments")
	ErrInvalidTime     = errors.New("invalid time")
	ErrRequiresVIN     = errors.New("command requires a VIN")
	ErrUnknownCommand  = errors.New("unrecognized command")
)

// commandOptions is applied to every command sent to a vehicle. Fields are populated by the
// -retry-duration and -wait flags.
var commandOptions vehicle.CommandOptions

type Argument struct {
	name string
	help string
}

type Handler func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error)

type Command struct {
	help        string
	requiresVIN bool
	args        []Argument
	optional    []Argument
	handler     Handler
}

// vehicleAction is the signature shared by parameterless vehicle commands, such as
// (*vehicle.Vehicle).Lock.
type vehicleAction func(*vehicle.Vehicle, context.Context, *vehicle.CommandOptions) (connector.Response, error)

func action(help string, fn vehicleAction) *Command {
	return &Command{
		help:        help,
		requiresVIN: true,
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return fn(car, ctx, &commandOptions)
		},
	}
}

func toggle(help string, on, off vehicleAction) *Command {
	return &Command{
		help:        help,
		requiresVIN: true,
		args: []Argument{
			Argument{name: "STATE", help: "'on' or 'off'"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			enabled, err := parseBool(args["STATE"])
			if err != nil {
				return nil, err
			}
			if enabled {
				return on(car, ctx, &commandOptions)
			}
			return off(car, ctx, &commandOptions)
		},
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: expected on or off, got '%s'", ErrCommandLineArgs, s)
	}
	return b, nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrCommandLineArgs, name)
	}
	return n, nil
}

// ParseTimestamp accepts Unix seconds or an RFC 3339 timestamp and returns Unix seconds.
func ParseTimestamp(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' is neither Unix seconds nor RFC 3339", ErrInvalidTime, s)
	}
	return t.Unix(), nil
}

// optionalTimestamp parses args[name] if it was provided.
func optionalTimestamp(args map[string]string, name string) (*int64, error) {
	s, ok := args[name]
	if !ok {
		return nil, nil
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func optionalRange(args map[string]string) (from, to *int64, err error) {
	if from, err = optionalTimestamp(args, "FROM"); err != nil {
		return
	}
	to, err = optionalTimestamp(args, "TO")
	return
}

func MinutesAfterMidnight(hoursAndMinutes string) (int, error) {
	components := strings.Split(hoursAndMinutes, ":")
	if len(components) != 2 {
		return 0, fmt.Errorf("%w: expected HH:MM", ErrInvalidTime)
	}
	hours, err := strconv.Atoi(components[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTime, err)
	}
	minutes, err := strconv.Atoi(components[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTime, err)
	}

	if hours > 23 || hours < 0 || minutes > 59 || minutes < 0 {
		return 0, fmt.Errorf("%w: hours or minutes outside valid range", ErrInvalidTime)
	}
	return 60*hours + minutes, nil
}

// ParseTemperature converts strings such as 21c, 70F or 20.5 to degrees Celsius.
func ParseTemperature(s string) (float64, error) {
	s = strings.TrimSpace(s)
	unit := "c"
	if n := len(s); n > 0 && strings.ContainsAny(s[n-1:], "cCfF") {
		unit = strings.ToLower(s[n-1:])
		s = s[:n-1]
	}
	degrees, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse temperature: format as 22C or 72F")
	}
	if unit == "f" {
		degrees = (degrees - 32.0) * 5.0 / 9.0
	}
	return degrees, nil
}

// ParseQuery converts a URL-encoded query string into request parameters. Repeated keys keep the
// last value.
func ParseQuery(raw string) (query.Values, error) {
	parsed, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCommandLineArgs, err)
	}
	var params []query.Param
	for key, values := range parsed {
		params = append(params, query.Set(key, values[len(values)-1]))
	}
	return query.Normalize(params...), nil
}

func apiPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

func printResponse(w io.Writer, rsp connector.Response) error {
	encoded, err := json.MarshalIndent(rsp, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", encoded)
	return err
}

func checkReadiness(commandName string, haveVIN bool) (*Command, error) {
	info, ok := commands[commandName]
	if !ok {
		return nil, ErrUnknownCommand
	}
	if info.requiresVIN && !haveVIN {
		return nil, ErrRequiresVIN
	}
	return info, nil
}

func execute(ctx context.Context, w io.Writer, acct *account.Account, car *vehicle.Vehicle, args []string) error {
	if len(args) == 0 {
		return errors.New("missing COMMAND")
	}

	info, err := checkReadiness(args[0], car != nil)
	if err != nil {
		return err
	}

	var rsp connector.Response
	if len(args)-1 < len(info.args) || len(args)-1 > len(info.args)+len(info.optional) {
		writeErr("Invalid number of command line arguments: %d (%d required, %d optional).", len(args)-1, len(info.args), len(info.optional))
		err = ErrCommandLineArgs
	} else {
		keywords := make(map[string]string)
		for i, argInfo := range info.args {
			keywords[argInfo.name] = args[i+1]
		}
		index := len(info.args) + 1
		for _, argInfo := range info.optional {
			if index >= len(args) {
				break
			}
			keywords[argInfo.name] = args[index]
			index++
		}
		rsp, err = info.handler(ctx, acct, car, keywords)
	}

	// Print command-specific help
	if errors.Is(err, ErrCommandLineArgs) {
		info.Usage(args[0])
	}
	if err != nil {
		return err
	}
	if rsp != nil {
		return printResponse(w, rsp)
	}
	return nil
}

func (c *Command) Usage(name string) {
	fmt.Printf("Usage: %s", name)
	maxLength := 0
	for _, arg := range c.args {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	if len(c.optional) > 0 {
		fmt.Printf(" [")
	}
	for _, arg := range c.optional {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	if len(c.optional) > 0 {
		fmt.Printf(" ]")
	}
	fmt.Printf("\n%s\n", c.help)
	maxLength++
	for _, arg := range c.args {
		fmt.Printf("    %s:%s%s\n", arg.name, strings.Repeat(" ", maxLength-len(arg.name)), arg.help)
	}
	for _, arg := range c.optional {
		fmt.Printf("    %s:%s%s\n", arg.name, strings.Repeat(" ", maxLength-len(arg.name)), arg.help)
	}
}

var (
	argFrom = Argument{name: "FROM", help: "Start of range (Unix seconds or RFC 3339)"}
	argTo   = Argument{name: "TO", help: "End of range (Unix seconds or RFC 3339)"}
	argPIN  = Argument{name: "PIN", help: "Four-digit speed limit PIN"}
)

var commands = map[string]*Command{
	"vehicles": &Command{
		help: "List vehicles on the account",
		optional: []Argument{
			Argument{name: "ONLY_ACTIVE", help: "'on' to omit vehicles that are no longer on the account"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &account.AllVehiclesOptions{}
			if s, ok := args["ONLY_ACTIVE"]; ok {
				onlyActive, err := parseBool(s)
				if err != nil {
					return nil, err
				}
				opts.OnlyActive = &onlyActive
			}
			return acct.AllVehicles(ctx, opts)
		},
	},
	"get": &Command{
		help: "GET an arbitrary API PATH",
		args: []Argument{
			Argument{name: "PATH", help: "Path relative to the base URL, e.g. /vehicles"},
		},
		optional: []Argument{
			Argument{name: "QUERY", help: "URL-encoded query string, e.g. 'from=1700000000&to=1700086400'"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			params, err := ParseQuery(args["QUERY"])
			if err != nil {
				return nil, err
			}
			return acct.Get(ctx, apiPath(args["PATH"]), params)
		},
	},
	"post": &Command{
		help: "POST to an arbitrary API PATH",
		args: []Argument{
			Argument{name: "PATH", help: "Path relative to the base URL, e.g. /5YJ.../command/honk"},
		},
		optional: []Argument{
			Argument{name: "QUERY", help: "URL-encoded query string"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			params, err := ParseQuery(args["QUERY"])
			if err != nil {
				return nil, err
			}
			return acct.Post(ctx, apiPath(args["PATH"]), params)
		},
	},
	"state": &Command{
		help:        "Fetch the latest vehicle state",
		requiresVIN: true,
		optional: []Argument{
			Argument{name: "USE_CACHE", help: "'off' to force the server to query the vehicle"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.StateOptions{}
			if s, ok := args["USE_CACHE"]; ok {
				useCache, err := parseBool(s)
				if err != nil {
					return nil, err
				}
				opts.UseCache = &useCache
			}
			return car.State(ctx, opts)
		},
	},
	"location": &Command{
		help:        "Fetch the vehicle's coordinates and address",
		requiresVIN: true,
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.Location(ctx)
		},
	},
	"weather": &Command{
		help:        "Fetch the weather forecast at the vehicle's location",
		requiresVIN: true,
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.Weather(ctx)
		},
	},
	"status": &Command{
		help:        "Fetch whether the vehicle is asleep, waiting for sleep or awake",
		requiresVIN: true,
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.Status(ctx)
		},
	},
	"wake": &Command{
		help:        "Wake up the vehicle",
		requiresVIN: true,
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.Wake(ctx)
		},
	},
	"tire-pressure": &Command{
		help:        "Fetch tire pressures",
		requiresVIN: true,
		optional: []Argument{
			Argument{name: "UNITS", help: "One of: bar, kpa, psi"},
			argFrom,
			argTo,
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.TirePressureOptions{}
			if s, ok := args["UNITS"]; ok {
				opts.PressureFormat = query.Ptr(vehicle.PressureFormat(strings.ToLower(s)))
			}
			var err error
			if opts.From, opts.To, err = optionalRange(args); err != nil {
				return nil, err
			}
			return car.TirePressure(ctx, opts)
		},
	},
	"map": &Command{
		help:        "Save a map image centered on the vehicle to FILE",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "FILE", help: "Output file"},
		},
		optional: []Argument{
			Argument{name: "ZOOM", help: "Zoom level"},
			Argument{name: "STYLE", help: "'light' or 'dark'"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.MapOptions{}
			if s, ok := args["ZOOM"]; ok {
				zoom, err := parseInt("ZOOM", s)
				if err != nil {
					return nil, err
				}
				opts.Zoom = &zoom
			}
			if s, ok := args["STYLE"]; ok {
				opts.Style = query.Ptr(vehicle.MapStyle(strings.ToLower(s)))
			}
			image, err := car.Map(ctx, opts)
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(args["FILE"], image, 0644); err != nil {
				return nil, err
			}
			return connector.Response{"file": args["FILE"], "bytes": len(image)}, nil
		},
	},
	"battery-health": &Command{
		help:        "Fetch battery capacity measurements between FROM and TO",
		requiresVIN: true,
		args:        []Argument{argFrom, argTo},
		optional: []Argument{
			Argument{name: "DISTANCE_FORMAT", help: "'km' or 'mi'"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			from, err := ParseTimestamp(args["FROM"])
			if err != nil {
				return nil, err
			}
			to, err := ParseTimestamp(args["TO"])
			if err != nil {
				return nil, err
			}
			opts := &vehicle.BatteryHealthOptions{}
			if s, ok := args["DISTANCE_FORMAT"]; ok {
				opts.DistanceFormat = query.Ptr(vehicle.DistanceFormat(strings.ToLower(s)))
			}
			return car.BatteryHealth(ctx, from, to, opts)
		},
	},
	"charges": &Command{
		help:        "List charging sessions",
		requiresVIN: true,
		optional:    []Argument{argFrom, argTo},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.ChargesOptions{}
			var err error
			if opts.From, opts.To, err = optionalRange(args); err != nil {
				return nil, err
			}
			return car.Charges(ctx, opts)
		},
	},
	"charge-cost-set": &Command{
		help:        "Record the COST of charging session CHARGE_ID",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "CHARGE_ID", help: "Charging session ID"},
			Argument{name: "COST", help: "Total cost in the account's currency"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			id, err := strconv.ParseInt(args["CHARGE_ID"], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: CHARGE_ID must be an integer", ErrCommandLineArgs)
			}
			cost, err := strconv.ParseFloat(args["COST"], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: COST must be a number", ErrCommandLineArgs)
			}
			return car.SetChargeCost(ctx, id, cost)
		},
	},
	"charging-start":    action("Start charging", (*vehicle.Vehicle).StartCharging),
	"charging-stop":     action("Stop charging", (*vehicle.Vehicle).StopCharging),
	"charge-port-open":  action("Open and unlock charge port", (*vehicle.Vehicle).OpenChargePort),
	"charge-port-close": action("Close charge port", (*vehicle.Vehicle).CloseChargePort),
	"charging-set-limit": &Command{
		help:        "Set charge limit to PERCENT",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "PERCENT", help: "Charging limit"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			percent, err := parseInt("PERCENT", args["PERCENT"])
			if err != nil {
				return nil, err
			}
			return car.SetChargeLimit(ctx, percent, &commandOptions)
		},
	},
	"charging-set-amps": &Command{
		help:        "Set charge current to AMPS",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "AMPS", help: "Charging current"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			amps, err := parseInt("AMPS", args["AMPS"])
			if err != nil {
				return nil, err
			}
			return car.SetChargingAmps(ctx, amps, &commandOptions)
		},
	},
	"charging-schedule": &Command{
		help:        "Enable or disable scheduled charging",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "STATE", help: "'on' or 'off'"},
			Argument{name: "TIME", help: "Time to start charging in HH:MM format"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			enable, err := parseBool(args["STATE"])
			if err != nil {
				return nil, err
			}
			minutes, err := MinutesAfterMidnight(args["TIME"])
			if err != nil {
				return nil, err
			}
			return car.SetScheduledCharging(ctx, enable, minutes, &commandOptions)
		},
	},
	"charging-schedule-departure": &Command{
		help:        "Enable or disable a scheduled departure",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "STATE", help: "'on' or 'off'"},
			Argument{name: "DEPARTURE_TIME", help: "Time to depart in HH:MM format"},
		},
		optional: []Argument{
			Argument{name: "OFF_PEAK_END_TIME", help: "End time of off-peak charging in HH:MM format"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			enable, err := parseBool(args["STATE"])
			if err != nil {
				return nil, err
			}
			departure, err := MinutesAfterMidnight(args["DEPARTURE_TIME"])
			if err != nil {
				return nil, err
			}
			opts := &vehicle.DepartureOptions{CommandOptions: commandOptions}
			if s, ok := args["OFF_PEAK_END_TIME"]; ok {
				end, err := MinutesAfterMidnight(s)
				if err != nil {
					return nil, err
				}
				opts.OffPeakChargingEnabled = query.Ptr(true)
				opts.EndOffPeakTime = &end
			}
			return car.SetScheduledDeparture(ctx, enable, departure, opts)
		},
	},
	"climate-on":  action("Turn on climate control", (*vehicle.Vehicle).StartClimate),
	"climate-off": action("Turn off climate control", (*vehicle.Vehicle).StopClimate),
	"climate-set-temp": &Command{
		help:        "Set cabin temperature",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "TEMP", help: "Desired temperature (e.g., 70f or 21c; defaults to Celsius)"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			degrees, err := ParseTemperature(args["TEMP"])
			if err != nil {
				return nil, err
			}
			return car.SetTemperature(ctx, degrees, &commandOptions)
		},
	},
	"seat-heater": &Command{
		help:        "Set seat heater at SEAT to LEVEL",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "SEAT", help: "One of: front_left, front_right, rear_left, rear_center, rear_right, third_row_left, third_row_right"},
			Argument{name: "LEVEL", help: "0 (off) to 3 (high)"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			level, err := parseInt("LEVEL", args["LEVEL"])
			if err != nil {
				return nil, err
			}
			return car.SetSeatHeat(ctx, vehicle.Seat(strings.ToLower(args["SEAT"])), level, &commandOptions)
		},
	},
	"defrost":               toggle("Turn maximum defrost on or off", (*vehicle.Vehicle).StartDefrost, (*vehicle.Vehicle).StopDefrost),
	"steering-wheel-heater": toggle("Turn steering wheel heater on or off", (*vehicle.Vehicle).StartSteeringWheelHeater, (*vehicle.Vehicle).StopSteeringWheelHeater),
	"bioweapon-mode": &Command{
		help:        "Turn Bioweapon Defense Mode on or off",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "STATE", help: "'on' or 'off'"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			on, err := parseBool(args["STATE"])
			if err != nil {
				return nil, err
			}
			return car.SetBioweaponDefenseMode(ctx, on, &commandOptions)
		},
	},
	"climate-keeper": &Command{
		help:        "Set climate keeper MODE",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "MODE", help: "One of: off, on, dog, camp"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.SetClimateKeeperMode(ctx, vehicle.ClimateKeeperMode(strings.ToLower(args["MODE"])), &commandOptions)
		},
	},
	"lock":            action("Lock vehicle", (*vehicle.Vehicle).Lock),
	"unlock":          action("Unlock vehicle", (*vehicle.Vehicle).Unlock),
	"sentry-mode":     toggle("Turn Sentry Mode on or off", (*vehicle.Vehicle).EnableSentryMode, (*vehicle.Vehicle).DisableSentryMode),
	"valet-mode":      toggle("Turn Valet Mode on or off", (*vehicle.Vehicle).EnableValetMode, (*vehicle.Vehicle).DisableValetMode),
	"keyless-driving": action("Enable keyless driving for two minutes", (*vehicle.Vehicle).EnableKeylessDriving),
	"speed-limit-set": &Command{
		help:        "Set speed limit to MPH",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "MPH", help: "Speed limit in miles per hour"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			mph, err := parseInt("MPH", args["MPH"])
			if err != nil {
				return nil, err
			}
			return car.SetSpeedLimit(ctx, mph, &commandOptions)
		},
	},
	"speed-limit-activate": &Command{
		help:        "Activate Speed Limit Mode",
		requiresVIN: true,
		args:        []Argument{argPIN},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.EnableSpeedLimit(ctx, args["PIN"], &commandOptions)
		},
	},
	"speed-limit-deactivate": &Command{
		help:        "Deactivate Speed Limit Mode",
		requiresVIN: true,
		args:        []Argument{argPIN},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.DisableSpeedLimit(ctx, args["PIN"], &commandOptions)
		},
	},
	"speed-limit-clear-pin": &Command{
		help:        "Clear Speed Limit Mode PIN",
		requiresVIN: true,
		args:        []Argument{argPIN},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.ClearSpeedLimitPIN(ctx, args["PIN"], &commandOptions)
		},
	},
	"windows-vent":  action("Vent all windows", (*vehicle.Vehicle).VentWindows),
	"windows-close": action("Close all windows", (*vehicle.Vehicle).CloseWindows),
	"sunroof-vent":  action("Vent sunroof", (*vehicle.Vehicle).VentSunroof),
	"sunroof-close": action("Close sunroof", (*vehicle.Vehicle).CloseSunroof),
	"frunk-open":    action("Open vehicle frunk. Note that there's no frunk-close command!", (*vehicle.Vehicle).OpenFrontTrunk),
	"trunk-move":    action("Toggle trunk open/closed", (*vehicle.Vehicle).OpenCloseRearTrunk),
	"honk":          action("Honk horn", (*vehicle.Vehicle).Honk),
	"flash-lights":  action("Flash lights", (*vehicle.Vehicle).FlashLights),
	"boombox":       action("Play a sound through the external speaker", (*vehicle.Vehicle).Boombox),
	"homelink":      action("Trigger the nearest HomeLink device", (*vehicle.Vehicle).TriggerHomelink),
	"share": &Command{
		help:        "Send an address, coordinates or URL to the vehicle's navigation system",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "VALUE", help: "Destination"},
		},
		optional: []Argument{
			Argument{name: "LOCALE", help: "Locale of VALUE, e.g. en-US"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.ShareOptions{CommandOptions: commandOptions}
			if locale, ok := args["LOCALE"]; ok {
				opts.Locale = &locale
			}
			return car.Share(ctx, args["VALUE"], opts)
		},
	},
	"software-update-start": &Command{
		help:        "Start software update after DELAY",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "DELAY", help: "Time to wait before starting update. Examples: 2h, 10m."},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			delay, err := time.ParseDuration(args["DELAY"])
			if err != nil {
				return nil, fmt.Errorf("%w: DELAY must be a duration such as 10m", ErrCommandLineArgs)
			}
			return car.ScheduleSoftwareUpdate(ctx, int(delay.Seconds()), &commandOptions)
		},
	},
	"software-update-cancel": action("Cancel a pending software update", (*vehicle.Vehicle).CancelSoftwareUpdate),
	"drives": &Command{
		help:        "List drives",
		requiresVIN: true,
		optional:    []Argument{argFrom, argTo},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.DrivesOptions{}
			var err error
			if opts.From, opts.To, err = optionalRange(args); err != nil {
				return nil, err
			}
			return car.Drives(ctx, opts)
		},
	},
	"drive-tag": &Command{
		help:        "Tag DRIVES with TAG",
		requiresVIN: true,
		args: []Argument{
			Argument{name: "DRIVES", help: "Comma-separated drive IDs"},
			Argument{name: "TAG", help: "Tag name"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.SetDriveTag(ctx, args["DRIVES"], args["TAG"])
		},
	},
	"driving-path": &Command{
		help:        "Fetch the coordinates the vehicle drove through",
		requiresVIN: true,
		optional:    []Argument{argFrom, argTo},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.DrivingPathOptions{}
			var err error
			if opts.From, opts.To, err = optionalRange(args); err != nil {
				return nil, err
			}
			return car.DrivingPath(ctx, opts)
		},
	},
	"states": &Command{
		help:        "Fetch historical states",
		requiresVIN: true,
		optional: []Argument{
			argFrom,
			argTo,
			Argument{name: "INTERVAL", help: "Seconds between samples"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.HistoricalStatesOptions{}
			var err error
			if opts.From, opts.To, err = optionalRange(args); err != nil {
				return nil, err
			}
			if s, ok := args["INTERVAL"]; ok {
				interval, err := parseInt("INTERVAL", s)
				if err != nil {
					return nil, err
				}
				opts.Interval = &interval
			}
			return car.HistoricalStates(ctx, opts)
		},
	},
	"last-idle-state": &Command{
		help:        "Fetch the state recorded when the vehicle last became idle",
		requiresVIN: true,
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			return car.LastIdleState(ctx)
		},
	},
	"consumption": &Command{
		help:        "Fetch energy use since the last charge",
		requiresVIN: true,
		optional: []Argument{
			Argument{name: "DISTANCE_FORMAT", help: "'km' or 'mi'"},
		},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.ConsumptionOptions{}
			if s, ok := args["DISTANCE_FORMAT"]; ok {
				opts.DistanceFormat = query.Ptr(vehicle.DistanceFormat(strings.ToLower(s)))
			}
			return car.ConsumptionSinceCharge(ctx, opts)
		},
	},
	"idles": &Command{
		help:        "List periods during which the vehicle was parked",
		requiresVIN: true,
		optional:    []Argument{argFrom, argTo},
		handler: func(ctx context.Context, acct *account.Account, car *vehicle.Vehicle, args map[string]string) (connector.Response, error) {
			opts := &vehicle.IdlesOptions{}
			var err error
			if opts.From, opts.To, err = optionalRange(args); err != nil {
				return nil, err
			}
			return car.Idles(ctx, opts)
		},
	},
}
