// Package metrics records Prometheus metrics for requests sent to the Tessie API.
//
// Wrap the HTTP client passed to account.New:
//
//	reg := prometheus.NewRegistry()
//	acct, err := account.New(config, metrics.New(reg).Instrument(http.DefaultClient))
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tessie-api/tessie-go/pkg/connector"
)

// CodeTransportError is the code label used when no HTTP response was received.
const CodeTransportError = "error"

// Metrics holds the collectors shared by all instrumented clients.
type Metrics struct {
	RequestTotal      *prometheus.CounterVec
	RequestDurationMs *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg registers with the default
// Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		RequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tessie_request_total",
			Help: "Total number of requests sent to the Tessie API.",
		}, []string{"method", "endpoint", "code"}),

		RequestDurationMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tessie_request_duration_ms",
			Help:    "Request round trip time in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		}, []string{"method", "endpoint"}),
	}
}

// Instrument returns a connector.Doer that records every request passed to next.
func (m *Metrics) Instrument(next connector.Doer) connector.Doer {
	return &doer{next: next, metrics: m}
}

type doer struct {
	next    connector.Doer
	metrics *Metrics
}

func (d *doer) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	rsp, err := d.next.Do(req)
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)

	endpoint := Endpoint(req.URL.Path)
	code := CodeTransportError
	if err == nil {
		code = strconv.Itoa(rsp.StatusCode)
	}
	d.metrics.RequestTotal.WithLabelValues(req.Method, endpoint, code).Inc()
	d.metrics.RequestDurationMs.WithLabelValues(req.Method, endpoint).Observe(elapsed)
	return rsp, err
}

// EndpointOther is the endpoint label used for paths the Tessie API does not define.
const EndpointOther = "other"

var accountEndpoints = makeSet("vehicles")

var vehicleEndpoints = makeSet(
	"battery_health", "charges", "charges/:id/set_cost", "consumption_since_charge",
	"drives", "drives/set_tag", "idles", "last_idle_state",
	"location", "map", "path", "state",
	"states", "status", "tire_pressure", "wake",
	"weather",
)

var commands = makeSet(
	"activate_front_trunk", "activate_rear_trunk", "cancel_software_update", "clear_speed_limit_pin",
	"close_charge_port", "close_sunroof", "close_windows", "disable_sentry",
	"disable_speed_limit", "disable_valet", "enable_sentry", "enable_speed_limit",
	"enable_valet", "flash", "honk", "lock",
	"open_charge_port", "remote_boombox", "remote_start", "schedule_software_update",
	"set_bioweapon_mode", "set_charge_limit", "set_charging_amps", "set_climate_keeper_mode",
	"set_scheduled_charging", "set_scheduled_departure", "set_seat_heat", "set_speed_limit",
	"set_temperatures", "share", "start_charging", "start_climate",
	"start_max_defrost", "start_steering_wheel_heater", "stop_charging", "stop_climate",
	"stop_max_defrost", "stop_steering_wheel_heater", "trigger_homelink", "unlock",
	"vent_sunroof", "vent_windows",
)

func makeSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Endpoint reduces a request path to a low-cardinality label. The leading VIN segment of
// vehicle-scoped paths is dropped and numeric IDs are replaced with ":id", so
// "/5YJ123/charges/42/set_cost" becomes "charges/:id/set_cost". Paths that do not name a known
// endpoint become EndpointOther.
func Endpoint(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 1 {
		if accountEndpoints[segments[0]] {
			return segments[0]
		}
		return EndpointOther
	}
	segments = segments[1:]
	for i, s := range segments {
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	endpoint := strings.Join(segments, "/")
	if vehicleEndpoints[endpoint] {
		return endpoint
	}
	if len(segments) == 2 && segments[0] == "command" && commands[segments[1]] {
		return endpoint
	}
	return EndpointOther
}
