/*
Package cli facilitates building command-line applications that talk to the Tessie API. It defines
a [Config] type that can be used to register common command-line flags (using the Golang flag
package) and environment variable equivalents.

The package uses [keyring]'s platform-agnostic interface for storing API keys in an OS-dependent
credential store.

# Examples

	import flag

	config, err := NewConfig(FlagAll)
	if err != nil {
		panic(err)
	}
	config.RegisterCommandLineFlags() // Adds command-line flags for the VIN, API key location, etc.
	flag.Parse()
	config.ReadFromEnvironment()      // Fills in missing fields using environment variables
	config.LoadCredentials()          // Prompt for Keyring password if needed

	// The car is nil if no VIN was configured.
	acct, car, err := config.Connect(nil)
	if err != nil {
		panic(err)
	}

Use a [Flag] mask to control what [Config] fields are populated. Note that config.Flags must be set
before calling [flag.Parse] or [Config.ReadFromEnvironment]:

	config, err = NewConfig(FlagAPIKey) // Account-level tools that never address a single vehicle.
*/
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/99designs/keyring"

	"github.com/tessie-api/tessie-go/internal/log"
	"github.com/tessie-api/tessie-go/pkg/account"
	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/vehicle"
)

// Environment variable names used are used by [Config.ReadFromEnvironment] to set common parameters.
const (
	EnvTessieVIN          = "TESSIE_VIN"
	EnvTessieAPIKey       = "TESSIE_API_KEY"
	EnvTessieTokenName    = "TESSIE_TOKEN_NAME"
	EnvTessieTokenFile    = "TESSIE_TOKEN_FILE"
	EnvTessieBaseURL      = "TESSIE_BASE_URL"
	EnvTessieKeyringType  = "TESSIE_KEYRING_TYPE"
	EnvTessieKeyringPass  = "TESSIE_KEYRING_PASSWORD"
	EnvTessieKeyringPath  = "TESSIE_KEYRING_PATH"
	EnvTessieKeyringDebug = "TESSIE_KEYRING_DEBUG"
)

// Flag controls what options should be scanned from the command line and/or environment variables.
type Flag int

func (f Flag) isSet(other Flag) bool {
	return (f & other) == other
}

const (
	FlagVIN    Flag = 1 // Enable VIN option.
	FlagAPIKey Flag = 2 // Enable API key options. Required for any request.
	FlagAll    Flag = FlagVIN | FlagAPIKey
)

var (
	ErrNoTokenSpecified = errors.New("API key location not provided")
	ErrNoVINSpecified   = errors.New("VIN not provided")
	ErrKeyNotFound      = keyring.ErrKeyNotFound
)

// Config fields determine how a client authenticates to the Tessie API and which vehicle it
// addresses.
type Config struct {
	Flags            Flag   // Controls which set of environment variables/CLI flags to use.
	KeyringTokenName string // Username for API key in system keyring
	VIN              string
	TokenFilename    string
	BaseURL          string
	Backend          keyring.Config
	BackendType      backendType
	Debug            bool // Enable keyring debug messages

	password *string
	envToken string
	apiKey   string
	acct     *account.Account
}

func NewConfig(flags Flag) (*Config, error) {
	c := Config{
		Flags: flags,
		Backend: keyring.Config{
			ServiceName:              keyringServiceName,
			KeychainTrustApplication: true,
			KeyCtlScope:              "user",
		},
	}
	c.BackendType = backendType{&c}
	c.Backend.KeychainPasswordFunc = c.getPassword
	c.Backend.FilePasswordFunc = c.getPassword

	return &c, nil
}

// RegisterCommandLineFlags registers c's options with the default flag.CommandLine set.
func (c *Config) RegisterCommandLineFlags() {
	c.RegisterFlags(flag.CommandLine)
}

// RegisterFlags registers c's options with fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	if c.Flags.isSet(FlagVIN) {
		fs.StringVar(&c.VIN, "vin", "", "Vehicle Identification Number. Defaults to $TESSIE_VIN.")
	}
	if c.Flags.isSet(FlagAPIKey) {
		fs.StringVar(&c.KeyringTokenName, "token-name", "", "System keyring `name` for API key. Defaults to $TESSIE_TOKEN_NAME.")
		fs.StringVar(&c.TokenFilename, "token-file", "", "`File` containing API key. Defaults to $TESSIE_TOKEN_FILE.")
		fs.StringVar(&c.BaseURL, "base-url", "", "API `URL`. Defaults to $TESSIE_BASE_URL or "+account.DefaultBaseURL+".")

		var names []string
		for _, name := range keyring.AvailableBackends() {
			names = append(names, string(name))
		}
		sort.Strings(names)
		fs.Var(&c.BackendType, "keyring-type", "Keyring `type` ("+strings.Join(names, "|")+"). Defaults to $TESSIE_KEYRING_TYPE.")
		fs.StringVar(&c.Backend.FileDir, "keyring-file-dir", keyringDirectory, "keyring `directory` for file-backed keyring types")
		fs.BoolVar(&c.Debug, "keyring-debug", false, "Enable keyring debug logging")
	}
}

// LoadCredentials attempts to load the API key, prompting for a keyring password if needed. Call
// this method before [Config.Connect] to prevent interactive prompts from counting against
// timeouts.
func (c *Config) LoadCredentials() error {
	if c.Flags.isSet(FlagAPIKey) {
		if _, err := c.Token(); err != nil {
			return err
		}
	}
	return nil
}

// ReadFromEnvironment populates c using environment variables. Values that are already populated
// are not overwritten.
//
// Calling ReadFromEnvironment after flag.Parse() (or other initialization method) will prevent the
// environment from overriding explicit command-line parameters and avoid potentially misleading
// debug log messages.
func (c *Config) ReadFromEnvironment() {
	if c.Flags.isSet(FlagVIN) {
		if c.VIN == "" {
			c.VIN = os.Getenv(EnvTessieVIN)
			log.Debug("Set VIN to '%s'", c.VIN)
		}
	}
	if !c.Flags.isSet(FlagAPIKey) {
		return
	}
	if c.KeyringTokenName == "" && c.TokenFilename == "" {
		c.envToken = os.Getenv(EnvTessieAPIKey)
		if c.envToken != "" {
			log.Debug("Set API key to %s", account.Credential(c.envToken))
		}

		c.KeyringTokenName = os.Getenv(EnvTessieTokenName)
		log.Debug("Set API key name to '%s'", c.KeyringTokenName)

		c.TokenFilename = os.Getenv(EnvTessieTokenFile)
		log.Debug("Set API key file to '%s'", c.TokenFilename)
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvTessieBaseURL)
		log.Debug("Set base URL to '%s'", c.BaseURL)
	}
	if c.BackendType.String() == string(keyring.InvalidBackend) {
		if err := c.BackendType.Set(os.Getenv(EnvTessieKeyringType)); err == nil {
			log.Debug("Set keyring type to '%s'", c.BackendType)
		}
	}
	if c.password == nil {
		password := os.Getenv(EnvTessieKeyringPass)
		c.password = &password
		if len(password) > 0 {
			log.Debug("Set keyring File Password to %s", strings.Repeat("*", len("hunter2")))
		}
	}
	if c.Backend.FileDir == "" {
		c.Backend.FileDir = os.Getenv(EnvTessieKeyringPath)
		log.Debug("Set keyring File Path to '%s'", c.Backend.FileDir)
	}
	if !c.Debug {
		_, c.Debug = os.LookupEnv(EnvTessieKeyringDebug)
		log.Debug("Set keyring Debug Logging to '%v'", c.Debug)
	}
	keyring.Debug = c.Debug
}

// Token returns the API key. Sources are tried in order: c.TokenFilename, the $TESSIE_API_KEY
// environment variable, and then the system keyring entry named c.KeyringTokenName. A missing
// token file falls through to the remaining sources.
//
// The key is cached after it is first loaded.
func (c *Config) Token() (string, error) {
	if c.apiKey != "" {
		return c.apiKey, nil
	}
	if !c.Flags.isSet(FlagAPIKey) {
		log.Debug("Skipping API key loading because FlagAPIKey is not set")
		return "", ErrNoTokenSpecified
	}
	if c.TokenFilename != "" {
		token, err := os.ReadFile(c.TokenFilename)
		if err == nil {
			c.apiKey = strings.TrimSpace(string(token))
			return c.apiKey, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		log.Debug("API key file %s does not exist", c.TokenFilename)
	}
	if c.envToken != "" {
		c.apiKey = c.envToken
		return c.apiKey, nil
	}
	if c.KeyringTokenName == "" {
		return "", ErrNoTokenSpecified
	}
	var err error
	c.apiKey, err = c.LoadTokenFromKeyring()
	return c.apiKey, err
}

// Account returns an account configured with the API key and base URL in c. Requests are sent
// using client, or a default HTTP client if client is nil.
func (c *Config) Account(client connector.Doer) (*account.Account, error) {
	if c.acct != nil {
		return c.acct, nil
	}
	token, err := c.Token()
	if err != nil {
		return nil, err
	}
	c.acct, err = account.New(account.Config{APIKey: token, BaseURL: c.BaseURL}, client)
	return c.acct, err
}

// Connect returns the configured account and, if c includes a VIN, a handle for that vehicle.
// Connect does not send any requests.
func (c *Config) Connect(client connector.Doer) (acct *account.Account, car *vehicle.Vehicle, err error) {
	acct, err = c.Account(client)
	if err != nil {
		return nil, nil, err
	}
	if c.Flags.isSet(FlagVIN) && c.VIN != "" {
		car = acct.GetVehicle(c.VIN)
	}
	return acct, car, nil
}

// Vehicle is like [Config.Connect] but fails if no VIN is configured.
func (c *Config) Vehicle(client connector.Doer) (*vehicle.Vehicle, error) {
	_, car, err := c.Connect(client)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, ErrNoVINSpecified
	}
	return car, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("vin=%q token-name=%q token-file=%q base-url=%q keyring=%s",
		c.VIN, c.KeyringTokenName, c.TokenFilename, c.BaseURL, c.BackendType)
}
