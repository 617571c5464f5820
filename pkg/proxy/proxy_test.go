package proxy_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tessie-api/tessie-go/pkg/account"
	"github.com/tessie-api/tessie-go/pkg/proxy"
)

const (
	vin        = "5YJ3E1EA7KF000000"
	proxyKey   = "proxy-key"
	clientKey  = "client-key"
	tessieBase = "https://api.tessie.com"
	cacheSize  = 4
)

var _ = Describe("Proxy", func() {
	var (
		client *http.Client
		p      *proxy.Proxy
	)

	sendRequest := func(method, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		p.ServeHTTP(rr, req)
		return rr
	}

	requireKey := func(key string, responder httpmock.Responder) httpmock.Responder {
		return func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "Bearer "+key {
				return httpmock.NewStringResponse(http.StatusUnauthorized, `{"error":"bad key"}`), nil
			}
			return responder(req)
		}
	}

	BeforeEach(func() {
		var err error
		client = &http.Client{}
		httpmock.ActivateNonDefault(client)
		DeferCleanup(httpmock.DeactivateAndReset)
		p, err = proxy.New(account.Config{APIKey: proxyKey}, client, cacheSize)
		Expect(err).ToNot(HaveOccurred())
	})

	Context("authentication", func() {
		It("uses the configured key when the client omits one", func() {
			httpmock.RegisterResponder(http.MethodGet, tessieBase+"/"+vin+"/status",
				requireKey(proxyKey, httpmock.NewStringResponder(http.StatusOK, `{"status":"asleep"}`)))

			rr := sendRequest(http.MethodGet, "/"+vin+"/status", "")
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.String()).To(MatchJSON(`{"status":"asleep"}`))
			Expect(rr.Header().Get("Content-Type")).To(Equal("application/json"))
		})

		It("prefers the client's key", func() {
			httpmock.RegisterResponder(http.MethodGet, tessieBase+"/vehicles",
				requireKey(clientKey, httpmock.NewStringResponder(http.StatusOK, `{"results":[]}`)))

			rr := sendRequest(http.MethodGet, "/vehicles", clientKey)
			Expect(rr.Code).To(Equal(http.StatusOK))
		})

		It("rejects clients when no key is configured", func() {
			var err error
			p, err = proxy.New(account.Config{}, client, cacheSize)
			Expect(err).ToNot(HaveOccurred())

			rr := sendRequest(http.MethodGet, "/vehicles", "")
			Expect(rr.Code).To(Equal(http.StatusUnauthorized))
			Expect(httpmock.GetTotalCallCount()).To(Equal(0))
		})

		It("rejects other authorization schemes", func() {
			req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
			req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			rr := httptest.NewRecorder()
			p.ServeHTTP(rr, req)
			Expect(rr.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Context("account cache", func() {
		It("does not remember rejected keys", func() {
			httpmock.RegisterResponder(http.MethodGet, tessieBase+"/vehicles",
				requireKey(clientKey, httpmock.NewStringResponder(http.StatusOK, `{"results":[]}`)))

			for i := 0; i < 100; i++ {
				rr := sendRequest(http.MethodGet, "/vehicles", fmt.Sprintf("junk-%d", i))
				Expect(rr.Code).To(Equal(http.StatusUnauthorized))
			}
			Expect(p.CachedAccounts()).To(Equal(0))

			Expect(sendRequest(http.MethodGet, "/vehicles", clientKey).Code).To(Equal(http.StatusOK))
			Expect(p.CachedAccounts()).To(Equal(1))
		})

		It("keeps a bounded number of accepted keys", func() {
			httpmock.RegisterResponder(http.MethodGet, tessieBase+"/vehicles",
				httpmock.NewStringResponder(http.StatusOK, `{"results":[]}`))

			for i := 0; i < 100; i++ {
				Expect(sendRequest(http.MethodGet, "/vehicles", fmt.Sprintf("key-%d", i)).Code).To(Equal(http.StatusOK))
			}
			Expect(p.CachedAccounts()).To(Equal(cacheSize))
		})

		It("rejects invalid cache sizes", func() {
			_, err := proxy.New(account.Config{APIKey: proxyKey}, client, 0)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("forwarding", func() {
		It("forwards query parameters", func() {
			httpmock.RegisterResponderWithQuery(http.MethodPost, tessieBase+"/"+vin+"/command/set_charge_limit",
				"percent=80&wait_for_completion=true",
				httpmock.NewStringResponder(http.StatusOK, `{"result":true}`))

			rr := sendRequest(http.MethodPost, "/"+vin+"/command/set_charge_limit?percent=80&wait_for_completion=true", "")
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.String()).To(MatchJSON(`{"result":true}`))
		})

		It("relays server errors unchanged", func() {
			httpmock.RegisterResponder(http.MethodGet, tessieBase+"/MISSING/state",
				httpmock.NewStringResponder(http.StatusNotFound, `{"error":"Vehicle not found"}`))

			rr := sendRequest(http.MethodGet, "/MISSING/state", "")
			Expect(rr.Code).To(Equal(http.StatusNotFound))
			Expect(rr.Body.String()).To(Equal(`{"error":"Vehicle not found"}`))
		})

		It("relays images", func() {
			png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")
			httpmock.RegisterResponder(http.MethodGet, tessieBase+"/"+vin+"/map",
				httpmock.NewBytesResponder(http.StatusOK, png))

			rr := sendRequest(http.MethodGet, "/"+vin+"/map", "")
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.Bytes()).To(Equal(png))
			Expect(rr.Header().Get("Content-Type")).To(Equal("image/png"))
		})

		It("reports transport errors as bad gateway", func() {
			httpmock.RegisterResponder(http.MethodGet, tessieBase+"/"+vin+"/location",
				httpmock.NewErrorResponder(context.Canceled))

			rr := sendRequest(http.MethodGet, "/"+vin+"/location", "")
			Expect(rr.Code).To(Equal(http.StatusBadGateway))
			Expect(rr.Body.String()).To(ContainSubstring(`"error"`))
		})

		It("rejects unsupported methods", func() {
			rr := sendRequest(http.MethodDelete, "/"+vin+"/state", "")
			Expect(rr.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(httpmock.GetTotalCallCount()).To(Equal(0))
		})
	})

	Context("commands", func() {
		It("serializes commands sent to the same vehicle", func() {
			var active, maxActive int32
			httpmock.RegisterResponder(http.MethodPost, tessieBase+"/"+vin+"/command/honk",
				func(req *http.Request) (*http.Response, error) {
					n := atomic.AddInt32(&active, 1)
					for {
						m := atomic.LoadInt32(&maxActive)
						if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
							break
						}
					}
					time.Sleep(10 * time.Millisecond)
					atomic.AddInt32(&active, -1)
					return httpmock.NewStringResponse(http.StatusOK, `{"result":true}`), nil
				})

			var wg sync.WaitGroup
			codes := make(chan int, 4)
			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					codes <- sendRequest(http.MethodPost, "/"+vin+"/command/honk", "").Code
				}()
			}
			wg.Wait()
			close(codes)
			for code := range codes {
				Expect(code).To(Equal(http.StatusOK))
			}
			Expect(atomic.LoadInt32(&maxActive)).To(Equal(int32(1)))
		})

		It("times out waiting for a busy vehicle", func() {
			release := make(chan struct{})
			httpmock.RegisterResponder(http.MethodPost, tessieBase+"/"+vin+"/wake",
				func(req *http.Request) (*http.Response, error) {
					<-release
					return httpmock.NewStringResponse(http.StatusOK, `{"result":true}`), nil
				})

			done := make(chan int, 1)
			go func() {
				defer GinkgoRecover()
				done <- sendRequest(http.MethodPost, "/"+vin+"/wake", "").Code
			}()
			Eventually(httpmock.GetTotalCallCount).Should(Equal(1))

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			req := httptest.NewRequest(http.MethodPost, "/"+vin+"/wake", nil).WithContext(ctx)
			rr := httptest.NewRecorder()
			p.ServeHTTP(rr, req)
			Expect(rr.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(httpmock.GetTotalCallCount()).To(Equal(1))

			close(release)
			Eventually(done).Should(Receive(Equal(http.StatusOK)))
		})
	})
})
