// Utility for saving Tessie API keys to the system keyring

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/tessie-api/tessie-go/pkg/cli"
)

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "usage: %s [-token-name token_name] [-delete] [file]\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Reads an API key from file, stdin or a terminal prompt and saves it under token_name")
	fmt.Fprintf(w, "in the system keyring. The token_name defaults to $%s.\n", cli.EnvTessieTokenName)
	fmt.Fprintln(w, "")
	flag.PrintDefaults()
}

func readToken() ([]byte, error) {
	switch flag.NArg() {
	case 0:
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			fmt.Fprint(os.Stderr, "API key: ")
			defer fmt.Fprintln(os.Stderr)
			return term.ReadPassword(fd)
		}
		return io.ReadAll(os.Stdin)
	case 1:
		return os.ReadFile(flag.Arg(0))
	}
	return nil, fmt.Errorf("too many command-line arguments")
}

func main() {
	returnCode := 1
	defer func() {
		os.Exit(returnCode)
	}()

	config, err := cli.NewConfig(cli.FlagAPIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load credential configuration: %s\n", err)
		return
	}

	var deleteToken bool
	config.RegisterCommandLineFlags()
	flag.BoolVar(&deleteToken, "delete", false, "Remove the API key instead of saving one")
	flag.Usage = usage
	flag.Parse()
	config.ReadFromEnvironment()

	if config.KeyringTokenName == "" {
		fmt.Fprintf(os.Stderr, "Must provide system keyring name to save API key under using -token-name or $%s\n", cli.EnvTessieTokenName)
		return
	}

	if deleteToken {
		if err := config.DeleteTokenFromKeyring(); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing API key from keyring: %s\n", err)
			return
		}
		returnCode = 0
		return
	}

	token, err := readToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading API key: %s\n", err)
		return
	}
	if len(token) == 0 {
		fmt.Fprintln(os.Stderr, "API key is empty")
		return
	}

	if err := config.SaveTokenToKeyring(string(token)); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving API key to keyring: %s\n", err)
		return
	}

	returnCode = 0
}
