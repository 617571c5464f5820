package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const (
	keyringServiceName  = "com.tessie.api"
	keyringTokenService = "apikey"
	keyringDirectory    = "~/.tessie_keys"
)

type backendType struct {
	config *Config
}

func (b backendType) String() string {
	if b.config == nil || len(b.config.Backend.AllowedBackends) == 0 {
		return string(keyring.InvalidBackend)
	}
	return string(b.config.Backend.AllowedBackends[0])
}

func (b backendType) Set(v string) error {
	value := keyring.BackendType(v)
	if b.config == nil {
		return fmt.Errorf("invalid backendType")
	}
	if v == "" {
		return nil
	}
	for _, name := range keyring.AvailableBackends() {
		if name == value {
			b.config.Backend.AllowedBackends = []keyring.BackendType{name}
			return nil
		}
	}
	return fmt.Errorf("unsupported credential storage: %s", v)
}

func (c *Config) getPassword(prompt string) (string, error) {
	if c.password != nil && *c.password != "" {
		return *c.password, nil
	}

	var w io.Writer
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		w = os.Stdout
	} else if term.IsTerminal(int(os.Stderr.Fd())) {
		w = os.Stderr
	} else {
		return "", fmt.Errorf("no terminal output available for password prompt")
	}

	fmt.Fprintf(w, "%s: ", prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(w)
	password := string(b)
	c.password = &password
	return password, nil
}

func (c *Config) openKeyring() (keyring.Keyring, error) {
	return keyring.Open(c.Backend)
}

func (c *Config) fullTokenName() string {
	return keyringTokenService + "." + c.KeyringTokenName
}

// LoadTokenFromKeyring loads an API key from the system keyring.
//
// The c.KeyringTokenName must match the value used with SaveTokenToKeyring.
func (c *Config) LoadTokenFromKeyring() (string, error) {
	kr, err := c.openKeyring()
	if err != nil {
		return "", err
	}

	item, err := kr.Get(c.fullTokenName())
	if err != nil {
		return "", fmt.Errorf("could not load API key: %w", err)
	}
	return strings.TrimSpace(string(item.Data)), nil
}

// SaveTokenToKeyring writes an API key to the system keyring.
//
// The c.KeyringTokenName identifies the key for future use with LoadTokenFromKeyring and does not
// need to match the system username.
func (c *Config) SaveTokenToKeyring(token string) error {
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}

	if err := kr.Set(keyring.Item{
		Key:   c.fullTokenName(),
		Label: "Tessie API key (" + c.KeyringTokenName + ")",
		Data:  []byte(strings.TrimSpace(token)),
	}); err != nil {
		return fmt.Errorf("failed to enroll API key in keyring: %w", err)
	}
	c.apiKey = ""
	c.acct = nil
	return nil
}

// DeleteTokenFromKeyring removes the API key from the system keyring.
func (c *Config) DeleteTokenFromKeyring() error {
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}
	return kr.Remove(c.fullTokenName())
}
