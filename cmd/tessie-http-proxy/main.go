package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tessie-api/tessie-go/internal/log"
	"github.com/tessie-api/tessie-go/pkg/account"
	"github.com/tessie-api/tessie-go/pkg/cli"
	"github.com/tessie-api/tessie-go/pkg/metrics"
	"github.com/tessie-api/tessie-go/pkg/proxy"
)

const defaultPort = 4443

const (
	EnvTlsCert = "TESSIE_HTTP_PROXY_TLS_CERT"
	EnvTlsKey  = "TESSIE_HTTP_PROXY_TLS_KEY"
	EnvHost    = "TESSIE_HTTP_PROXY_HOST"
	EnvPort    = "TESSIE_HTTP_PROXY_PORT"
	EnvTimeout = "TESSIE_HTTP_PROXY_TIMEOUT"
	EnvVerbose = "TESSIE_VERBOSE"
)

const nonLocalhostWarning = `
Do not listen on a network interface without adding client authentication. Any client that can
reach the proxy can control vehicles on the configured account.`

type HttpProxyConfig struct {
	keyFilename  string
	certFilename string
	verbose      bool
	host         string
	port         int
	timeout      time.Duration
	cacheSize    int
}

var (
	httpConfig = &HttpProxyConfig{}
)

func init() {
	flag.StringVar(&httpConfig.certFilename, "cert", "", "TLS certificate chain `file`. A self-signed certificate is generated if omitted.")
	flag.StringVar(&httpConfig.keyFilename, "tls-key", "", "Server TLS private key `file`")
	flag.BoolVar(&httpConfig.verbose, "verbose", false, "Enable verbose logging")
	flag.StringVar(&httpConfig.host, "host", "localhost", "Proxy server `hostname`")
	flag.IntVar(&httpConfig.port, "port", defaultPort, "`Port` to listen on")
	flag.DurationVar(&httpConfig.timeout, "timeout", proxy.DefaultTimeout, "Timeout interval when relaying requests")
	flag.IntVar(&httpConfig.cacheSize, "cache-size", proxy.DefaultCacheSize, "Number of client API keys to remember")
	flag.Func("log-level", "Log messages at `level` (none, error, warn, info, debug) or more severe", func(name string) error {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	})
}

func Usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [OPTION...]\n", os.Args[0])
	fmt.Fprintf(out, "\nA server that relays requests to the Tessie API, attaching a stored API key")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, nonLocalhostWarning)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
}

func registerProxyMetrics(reg prometheus.Registerer, p *proxy.Proxy) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tessie_proxy_cached_accounts",
		Help: "Number of client API keys remembered by the proxy.",
	}, func() float64 {
		return float64(p.CachedAccounts())
	}))
}

func newHandler(p *proxy.Proxy, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", p)
	return mux
}

func main() {
	config, err := cli.NewConfig(cli.FlagAPIKey)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load credential configuration: %s\n", err)
		os.Exit(1)
	}

	defer func() {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	}()

	flag.Usage = Usage
	config.RegisterCommandLineFlags()
	flag.Parse()
	if err = readFromEnvironment(); err != nil {
		return
	}
	config.ReadFromEnvironment()

	if httpConfig.verbose {
		log.SetLevel(log.LevelDebug)
	}

	if httpConfig.host != "localhost" {
		fmt.Fprintln(os.Stderr, nonLocalhostWarning)
	}

	var apiKey string
	apiKey, err = config.Token()
	if errors.Is(err, cli.ErrNoTokenSpecified) {
		log.Warning("No API key configured. Clients must provide their own.")
		err = nil
	} else if err != nil {
		return
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	client := metrics.New(reg).Instrument(&http.Client{})

	log.Debug("Creating proxy")
	var p *proxy.Proxy
	p, err = proxy.New(account.Config{APIKey: apiKey, BaseURL: config.BaseURL}, client, httpConfig.cacheSize)
	if err != nil {
		return
	}
	registerProxyMetrics(reg, p)
	p.Timeout = httpConfig.timeout
	addr := fmt.Sprintf("%s:%d", httpConfig.host, httpConfig.port)
	handler := newHandler(p, reg)

	if httpConfig.certFilename != "" || httpConfig.keyFilename != "" {
		log.Info("Listening on %s", addr)
		server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
		log.Error("Server stopped: %s", server.ListenAndServeTLS(httpConfig.certFilename, httpConfig.keyFilename))
		return
	}

	server, certPEM, err := NewServer(addr, httpConfig.host, handler)
	if err != nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Generated self-signed certificate:\n%s\n", certPEM)
	log.Info("Listening on %s", addr)
	log.Error("Server stopped: %s", server.ListenAndServeTLS("", ""))
}

// readFromEnvironment applies configuration from environment variables.
// Values are not overwritten.
func readFromEnvironment() error {
	if httpConfig.certFilename == "" {
		httpConfig.certFilename = os.Getenv(EnvTlsCert)
	}

	if httpConfig.keyFilename == "" {
		httpConfig.keyFilename = os.Getenv(EnvTlsKey)
	}

	if httpConfig.host == "localhost" {
		host, ok := os.LookupEnv(EnvHost)
		if ok {
			httpConfig.host = host
		}
	}

	if !httpConfig.verbose {
		if verbose, ok := os.LookupEnv(EnvVerbose); ok {
			httpConfig.verbose = verbose != "false" && verbose != "0"
		}
	}

	var err error
	if httpConfig.port == defaultPort {
		if port, ok := os.LookupEnv(EnvPort); ok {
			httpConfig.port, err = strconv.Atoi(port)
			if err != nil {
				return fmt.Errorf("invalid port: %s", port)
			}
		}
	}

	if httpConfig.timeout == proxy.DefaultTimeout {
		if timeoutEnv, ok := os.LookupEnv(EnvTimeout); ok {
			httpConfig.timeout, err = time.ParseDuration(timeoutEnv)
			if err != nil {
				return fmt.Errorf("invalid timeout: %s", timeoutEnv)
			}
		}
	}

	return nil
}
