package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tessie-api/tessie-go/internal/log"
	"github.com/tessie-api/tessie-go/pkg/account"
	"github.com/tessie-api/tessie-go/pkg/cli"
	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/connector/inet"
	"github.com/tessie-api/tessie-go/pkg/metrics"
	"github.com/tessie-api/tessie-go/pkg/protocol"
	"github.com/tessie-api/tessie-go/pkg/vehicle"
)

func writeErr(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n")
}

const usage = `
 * Every command requires an API key.
 * Commands that address a vehicle also require a VIN.
 * Responses are printed as indented JSON.`

func Usage() {
	fmt.Printf("Usage: %s [OPTION...] COMMAND [ARG...]\n", os.Args[0])
	fmt.Printf("\nRun %s help COMMAND for more information. Valid COMMANDs are listed below.", os.Args[0])
	fmt.Println("")
	fmt.Println(usage)
	fmt.Println("")

	fmt.Printf("Available OPTIONs:\n")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Printf("Available COMMANDs:\n")
	maxLength := 0
	var labels []string
	for command := range commands {
		labels = append(labels, command)
		if len(command) > maxLength {
			maxLength = len(command)
		}
	}
	sort.Strings(labels)
	for _, command := range labels {
		info := commands[command]
		fmt.Printf("  %s%s %s\n", command, strings.Repeat(" ", maxLength-len(command)), info.help)
	}
}

func runCommand(acct *account.Account, car *vehicle.Vehicle, args []string, timeout time.Duration) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := execute(ctx, os.Stdout, acct, car, args); err != nil {
		var httpErr *inet.HttpError
		if errors.As(err, &httpErr) && len(httpErr.Body) > 0 {
			writeErr("Request failed (%s): %s", httpErr.Status, httpErr.Body)
		} else if protocol.MayHaveSucceeded(err) {
			writeErr("Couldn't verify success: %s", err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			writeErr("Command timed out. Try increasing -command-timeout.")
		} else {
			writeErr("Failed to execute command: %s", err)
		}
		return 1
	}
	return 0
}

func runInteractiveShell(acct *account.Account, car *vehicle.Vehicle, timeout time.Duration) int {
	scanner := bufio.NewScanner(os.Stdin)
	for fmt.Printf("> "); scanner.Scan(); fmt.Printf("> ") {
		args, err := shlex.Split(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			return 0
		}
		if err != nil {
			writeErr("Invalid command: %s", err)
			continue
		}
		runCommand(acct, car, args, timeout)
	}
	if err := scanner.Err(); err != nil {
		writeErr("Error reading command: %s", err)
		return 1
	}
	return 0
}

// optionalBool is a boolean flag that records whether it was set.
type optionalBool struct {
	value **bool
}

func (o optionalBool) String() string {
	if o.value == nil || *o.value == nil {
		return ""
	}
	return strconv.FormatBool(**o.value)
}

func (o optionalBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*o.value = &b
	return nil
}

func (o optionalBool) IsBoolFlag() bool { return true }

func configureFlags(c *cli.Config, commandName string) error {
	info, ok := commands[commandName]
	if !ok {
		return ErrUnknownCommand
	}
	c.Flags = cli.FlagAPIKey
	if info.requiresVIN {
		c.Flags |= cli.FlagVIN
	}
	_, err := checkReadiness(commandName, c.VIN != "")
	return err
}

func setLogLevel(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

func main() {
	status := 1
	defer func() {
		os.Exit(status)
	}()

	var (
		debug          bool
		commandTimeout time.Duration
		metricsFile    string
	)
	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load credential configuration: %s\n", err)
		os.Exit(1)
	}
	flag.Usage = Usage
	flag.BoolVar(&debug, "debug", false, "Enable verbose debugging messages")
	flag.Func("log-level", "Log messages at `level` (none, error, warn, info, debug) or more severe", setLogLevel)
	flag.DurationVar(&commandTimeout, "command-timeout", 30*time.Second, "Set timeout for each request.")
	flag.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus request metrics to `file` on exit")
	flag.Var(optionalBool{&commandOptions.WaitForCompletion}, "wait", "Ask the server to wait for commands to complete")
	flag.Func("retry-duration", "`Seconds` the server should keep retrying commands", func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		commandOptions.RetryDuration = &n
		return nil
	})

	config.RegisterCommandLineFlags()
	flag.Parse()
	if !debug {
		if debugEnv, ok := os.LookupEnv("TESSIE_VERBOSE"); ok {
			debug = debugEnv != "false" && debugEnv != "0"
		}
	}
	if debug {
		log.SetLevel(log.LevelDebug)
	}
	config.ReadFromEnvironment()

	args := flag.Args()
	if len(args) > 0 {
		if args[0] == "help" {
			if len(args) == 1 {
				Usage()
				return
			}
			info, ok := commands[args[1]]
			if !ok {
				writeErr("Unrecognized command: %s", args[1])
				return
			}
			info.Usage(args[1])
			status = 0
			return
		} else if err := configureFlags(config, args[0]); err != nil {
			writeErr("Missing required flag: %s", err)
			return
		}
	}

	if err := config.LoadCredentials(); err != nil {
		writeErr("Error loading credentials: %s", err)
		return
	}

	var client connector.Doer = &http.Client{}
	if metricsFile != "" {
		reg := prometheus.NewRegistry()
		client = metrics.New(reg).Instrument(client)
		defer func() {
			if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
				writeErr("Failed to write metrics: %s", err)
			}
		}()
	}

	acct, car, err := config.Connect(client)
	if err != nil {
		writeErr("Error: %s", err)
		return
	}
	if acct.Credential().Expired(time.Now()) {
		writeErr("Warning: API key has expired and will likely be rejected")
	}

	if flag.NArg() > 0 {
		status = runCommand(acct, car, flag.Args(), commandTimeout)
	} else {
		status = runInteractiveShell(acct, car, commandTimeout)
	}
}
