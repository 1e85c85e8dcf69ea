package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/friendsofgo/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/gridview-go"
	"github.com/nrfta/gridview-go/catalog"
	"github.com/nrfta/gridview-go/rest"
)

// fakeAPI serves a canned body and records the requests it receives.
type fakeAPI struct {
	mu       sync.Mutex
	requests []*url.URL
	status   int
	body     string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL)
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func (f *fakeAPI) lastRequest() *url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

const twoProducts = `{
	"products": [
		{"id": 1, "title": "Essence Mascara", "brand": "Essence", "category": "beauty", "price": 9.99, "stock": 5, "rating": 4.94},
		{"id": 16, "title": "Apple", "category": "groceries", "price": 1.99, "stock": 8, "rating": 4.19}
	],
	"total": 194,
	"skip": 0,
	"limit": 2
}`

var _ = Describe("Client", func() {
	var (
		api    *fakeAPI
		server *httptest.Server
		client *rest.Client[catalog.Product]
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		api = &fakeAPI{status: http.StatusOK, body: twoProducts}
		server = httptest.NewServer(api)
		DeferCleanup(server.Close)

		cfg := rest.DefaultConfig()
		cfg.BaseURL = server.URL

		var err error
		client, err = rest.New[catalog.Product](cfg)
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Request building", func() {
		It("uses the listing path with limit and skip", func() {
			_, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 3, PageSize: 20})
			Expect(err).ToNot(HaveOccurred())

			req := api.lastRequest()
			Expect(req.Path).To(Equal("/products"))
			Expect(req.Query().Get("limit")).To(Equal("20"))
			Expect(req.Query().Get("skip")).To(Equal("40"))
			Expect(req.Query().Has("q")).To(BeFalse())
		})

		It("uses the search path when a term is given", func() {
			_, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 2, PageSize: 5, Search: "red phone"})
			Expect(err).ToNot(HaveOccurred())

			req := api.lastRequest()
			Expect(req.Path).To(Equal("/products/search"))
			Expect(req.Query().Get("q")).To(Equal("red phone"))
			Expect(req.Query().Get("limit")).To(Equal("5"))
			Expect(req.Query().Get("skip")).To(Equal("5"))
		})

		It("treats a blank term as no search", func() {
			_, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 5, Search: "   "})
			Expect(err).ToNot(HaveOccurred())

			Expect(api.lastRequest().Path).To(Equal("/products"))
		})

		It("rejects invalid parameters without a request", func() {
			_, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 0})

			Expect(gridview.IsInvalidParameter(err)).To(BeTrue())
			Expect(api.requests).To(BeEmpty())
		})
	})

	Describe("Response decoding", func() {
		It("returns records, total and metadata", func() {
			page, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 2})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Total).To(Equal(194))
			Expect(page.Records).To(HaveLen(2))
			Expect(page.Records[0].Brand.String).To(Equal("Essence"))
			Expect(page.Records[1].Brand.Valid).To(BeFalse())
			Expect(page.Metadata.Source).To(Equal("rest"))
			Expect(page.Metadata.RequestID).ToNot(BeEmpty())
		})

		It("accepts an empty records list", func() {
			api.body = `{"products": [], "total": 0}`

			page, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 2})
			Expect(err).ToNot(HaveOccurred())
			Expect(page.Records).ToNot(BeNil())
			Expect(page.Records).To(BeEmpty())
		})

		It("reads records from a configured key", func() {
			api.body = `{"items": [{"id": 9, "title": "x"}], "total": 1}`
			cfg := rest.DefaultConfig()
			cfg.BaseURL = server.URL
			cfg.RecordsKey = "items"
			c, err := rest.New[catalog.Product](cfg)
			Expect(err).ToNot(HaveOccurred())

			page, err := c.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 2})
			Expect(err).ToNot(HaveOccurred())
			Expect(page.Records[0].ID).To(Equal(9))
		})

		DescribeTable("reports malformed payloads",
			func(body string) {
				api.body = body

				_, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 2})
				Expect(err).To(HaveOccurred())
				Expect(gridview.IsMalformed(err)).To(BeTrue())
				Expect(gridview.IsTransport(err)).To(BeFalse())
			},
			Entry("missing total", `{"products": []}`),
			Entry("null total", `{"products": [], "total": null}`),
			Entry("string total", `{"products": [], "total": "many"}`),
			Entry("negative total", `{"products": [], "total": -1}`),
			Entry("missing records", `{"total": 3}`),
			Entry("records not a list", `{"products": {"id": 1}, "total": 3}`),
			Entry("null body", `null`),
		)

		DescribeTable("reports unparseable bodies as transport errors",
			func(body string) {
				api.body = body

				_, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 2})
				Expect(gridview.IsTransport(err)).To(BeTrue())
			},
			Entry("html", `<html>oops</html>`),
			Entry("truncated", `{"products": [`),
			Entry("array body", `[1, 2]`),
		)
	})

	Describe("Transport failures", func() {
		It("reports non-2xx statuses", func() {
			api.status = http.StatusBadGateway

			_, err := client.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 2})

			var transportErr *gridview.TransportError
			Expect(errors.As(err, &transportErr)).To(BeTrue())
			Expect(transportErr.Op).To(Equal("status"))
			Expect(transportErr.StatusCode).To(Equal(http.StatusBadGateway))
		})

		It("reports connection failures", func() {
			cfg := rest.DefaultConfig()
			cfg.BaseURL = server.URL
			server.Close()

			c, err := rest.New[catalog.Product](cfg)
			Expect(err).ToNot(HaveOccurred())

			_, err = c.Fetch(ctx, gridview.FetchParams{PageIndex: 1, PageSize: 2})
			Expect(gridview.IsTransport(err)).To(BeTrue())
		})

		It("honours context cancellation", func() {
			slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			}))
			DeferCleanup(slow.Close)

			cfg := rest.DefaultConfig()
			cfg.BaseURL = slow.URL
			c, err := rest.New[catalog.Product](cfg)
			Expect(err).ToNot(HaveOccurred())

			timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			_, err = c.Fetch(timeoutCtx, gridview.FetchParams{PageIndex: 1, PageSize: 2})
			Expect(gridview.IsTransport(err)).To(BeTrue())
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
		})
	})
})

var _ = Describe("Config", func() {
	It("accepts the defaults", func() {
		Expect(rest.DefaultConfig().Validate()).To(Succeed())
	})

	It("rejects a relative base URL", func() {
		cfg := rest.DefaultConfig()
		cfg.BaseURL = "not a url"
		Expect(cfg.Validate()).ToNot(Succeed())

		_, err := rest.New[catalog.Product](cfg)
		Expect(err).To(HaveOccurred())
	})

	It("rejects paths without a leading slash", func() {
		cfg := rest.DefaultConfig()
		cfg.SearchPath = "search"
		Expect(cfg.Validate()).ToNot(Succeed())
	})

	It("loads from the environment", func() {
		GinkgoT().Setenv("GRIDVIEW_REST_BASE_URL", "http://localhost:9999")
		GinkgoT().Setenv("GRIDVIEW_REST_TIMEOUT", "3s")

		cfg, err := rest.LoadConfig()
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.BaseURL).To(Equal("http://localhost:9999"))
		Expect(cfg.Timeout).To(Equal(3 * time.Second))
		Expect(cfg.ListPath).To(Equal("/products"))
	})
})
