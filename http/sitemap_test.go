package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	harvesthttp "github.com/harvestlabs/webharvest/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sitemapServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func urlset(urls ...string) string {
	s := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, u := range urls {
		s += "<url><loc>" + u + "</loc></url>"
	}
	return s + "</urlset>"
}

func TestSitemapSource_Discover(t *testing.T) {
	t.Parallel()

	t.Run("discovers sitemap from robots.txt", func(t *testing.T) {
		t.Parallel()

		routes := map[string]string{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, ok := routes[r.URL.Path]
			if !ok {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(server.Close)

		routes["/robots.txt"] = fmt.Sprintf("User-agent: *\nSitemap: %s/news-sitemap.xml\n", server.URL)
		routes["/news-sitemap.xml"] = urlset(
			server.URL+"/news/1.html",
			server.URL+"/news/2.html",
		)

		source := harvesthttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{
			server.URL + "/news/1.html",
			server.URL + "/news/2.html",
		}, urls)
	})

	t.Run("falls back to sitemap.xml", func(t *testing.T) {
		t.Parallel()

		routes := map[string]string{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, ok := routes[r.URL.Path]
			if !ok {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(server.Close)
		routes["/sitemap.xml"] = urlset(server.URL + "/a.html")

		source := harvesthttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/a.html"}, urls)
	})

	t.Run("follows sitemap index recursively", func(t *testing.T) {
		t.Parallel()

		routes := map[string]string{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, ok := routes[r.URL.Path]
			if !ok {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(server.Close)

		routes["/sitemap.xml"] = fmt.Sprintf(
			`<?xml version="1.0"?><sitemapindex><sitemap><loc>%s/child.xml</loc></sitemap></sitemapindex>`,
			server.URL)
		routes["/child.xml"] = urlset(server.URL + "/deep.html")

		source := harvesthttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/deep.html"}, urls)
	})

	t.Run("path prefix filters discovered URLs", func(t *testing.T) {
		t.Parallel()

		routes := map[string]string{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, ok := routes[r.URL.Path]
			if !ok {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(server.Close)

		routes["/sitemap.xml"] = urlset(
			server.URL+"/news/1.html",
			server.URL+"/newsroom/2.html",
			server.URL+"/about.html",
		)

		source := harvesthttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL+"/news")
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/news/1.html"}, urls)
	})

	t.Run("no sitemap means empty slice", func(t *testing.T) {
		t.Parallel()

		server := sitemapServer(t, map[string]string{})

		source := harvesthttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL)
		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})
}
