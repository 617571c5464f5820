package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/tessie-api/tessie-go/internal/log"
	"github.com/tessie-api/tessie-go/pkg/account"
	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/connector/inet"
	"github.com/tessie-api/tessie-go/pkg/protocol"
	"github.com/tessie-api/tessie-go/pkg/query"
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultCacheSize     = 10000 // Number of client API keys remembered
	proxyProtocolVersion = "tessie-http-proxy/1.0.0"
)

// Proxy exposes the Tessie REST API on a local address.
type Proxy struct {
	Timeout time.Duration

	config   account.Config
	client   connector.Doer
	fallback *account.Account
	accounts *lru.Cache
	vinLock  sync.Map
}

// New creates an http proxy that sends requests using client.
//
// If config.APIKey is set, requests without an Authorization header are sent using that key.
// Otherwise every client must provide its own key. Up to cacheSize client keys that the server
// has accepted are remembered, with the least recently used key evicted first.
func New(config account.Config, client connector.Doer, cacheSize int) (*Proxy, error) {
	if config.UserAgent == "" {
		config.UserAgent = proxyProtocolVersion
	}
	accounts, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("invalid cache size %d: %w", cacheSize, err)
	}
	p := &Proxy{
		Timeout:  DefaultTimeout,
		config:   config,
		client:   client,
		accounts: accounts,
	}
	if strings.TrimSpace(config.APIKey) != "" {
		if p.fallback, err = account.New(config, client); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// CachedAccounts returns the number of client keys currently remembered.
func (p *Proxy) CachedAccounts() int {
	return p.accounts.Len()
}

// getAccount returns the account to use for req and the client key it was created from. The key
// is empty when the configured key is used.
func (p *Proxy) getAccount(req *http.Request) (*account.Account, string, error) {
	header := req.Header.Get("Authorization")
	if header == "" {
		if p.fallback == nil {
			return nil, "", protocol.ErrNoCredential
		}
		return p.fallback, "", nil
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, "", errors.New("authorization header must use the Bearer scheme")
	}
	if acct, ok := p.accounts.Get(token); ok {
		return acct.(*account.Account), token, nil
	}
	config := p.config
	config.APIKey = token
	acct, err := account.New(config, p.client)
	if err != nil {
		return nil, "", err
	}
	return acct, token, nil
}

// rememberAccount caches acct under token unless the server rejected the key.
func (p *Proxy) rememberAccount(token string, acct *account.Account, err error) {
	if token == "" {
		return
	}
	var httpErr *inet.HttpError
	if errors.As(err, &httpErr) && (httpErr.Code == http.StatusUnauthorized || httpErr.Code == http.StatusForbidden) {
		p.accounts.Remove(token)
		return
	}
	p.accounts.Add(token, acct)
}

// lockVIN locks a VIN-specific mutex, blocking until the operation succeeds or ctx expires.
func (p *Proxy) lockVIN(ctx context.Context, vin string) error {
	lock := make(chan bool, 1)
	for {
		if obj, loaded := p.vinLock.LoadOrStore(vin, lock); loaded {
			select {
			case <-obj.(chan bool):
				// The goroutine that reads from the channel doesn't necessarily own the mutex. This
				// allows the mutex owner to delete the entry from the map, limiting the size of the
				// map to the number of concurrent vehicle commands.
			case <-ctx.Done():
				return ctx.Err()
			}
		} else {
			return nil
		}
	}
}

// unlockVIN releases a VIN-specific mutex.
func (p *Proxy) unlockVIN(vin string) {
	obj, ok := p.vinLock.Load(vin)
	if !ok {
		panic("called unlock without owning mutex")
	}
	p.vinLock.Delete(vin)  // Allow someone else to claim the mutex
	close(obj.(chan bool)) // Unblock goroutines
}

// commandVIN returns the VIN targeted by a state-changing request, or "" if req does not change
// vehicle state.
func commandVIN(req *http.Request) string {
	if req.Method != http.MethodPost {
		return ""
	}
	path := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	if len(path) == 3 && path[1] == "command" {
		return path[0]
	}
	if len(path) == 2 && path[1] == "wake" {
		return path[0]
	}
	return ""
}

// Response contains the proxy's reply to requests it could not relay.
type Response struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, code int, err error) {
	var httpErr *inet.HttpError
	if errors.As(err, &httpErr) {
		// Relay the server's reply unchanged.
		if len(httpErr.Body) > 0 {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(httpErr.Code)
		w.Write(httpErr.Body)
		return
	}

	reply := Response{Error: http.StatusText(code)}
	if err != nil {
		reply.Error = err.Error()
	}
	jsonBytes, err := json.Marshal(&reply)
	if err != nil {
		log.Error("Error serializing reply %+v: %s", &reply, err)
		code = http.StatusInternalServerError
		jsonBytes = []byte("{\"error\": \"internal server error\"}")
	}
	log.Error("Returning error %s: %s", http.StatusText(code), reply.Error)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	jsonBytes = append(jsonBytes, '\n')
	w.Write(jsonBytes)
}

// requestParams converts the query string of req into request parameters. Repeated keys keep the
// last value.
func requestParams(req *http.Request) query.Values {
	var params []query.Param
	for key, values := range req.URL.Query() {
		params = append(params, query.Set(key, values[len(values)-1]))
	}
	return query.Normalize(params...)
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	log.Info("Received %s request for %s", req.Method, req.URL.Path)

	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, nil)
		return
	}

	acct, token, err := p.getAccount(req)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), p.Timeout)
	defer cancel()

	// Serialize commands sent to a specific VIN.
	if vin := commandVIN(req); vin != "" {
		if err := p.lockVIN(ctx, vin); err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, err)
			return
		}
		defer p.unlockVIN(vin)
	}

	body, err := acct.SendRaw(ctx, &connector.Request{
		Method: req.Method,
		Path:   req.URL.Path,
		Params: requestParams(req),
	})
	p.rememberAccount(token, acct, err)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			writeJSONError(w, http.StatusGatewayTimeout, err)
		default:
			writeJSONError(w, http.StatusBadGateway, err)
		}
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(body))
	if json.Valid(body) {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
