package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/relaykit/relay/core/router"
)

// Benchmark route dispatch through static, parameterized and wildcard paths.
func BenchmarkStaticRoute(b *testing.B) {
	r := router.New()
	r.Get("/api/v1/users", func(ctx *router.Context) error {
		return ctx.String("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
}

func BenchmarkParamRoute(b *testing.B) {
	r := router.New()
	r.Get("/users/:id/posts/:postID", func(ctx *router.Context) error {
		return ctx.String(ctx.Param("id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42/posts/7", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
}

func BenchmarkWildcardRoute(b *testing.B) {
	r := router.New()
	r.Get("/static/*", func(ctx *router.Context) error {
		return ctx.String("file")
	})

	req := httptest.NewRequest(http.MethodGet, "/static/css/site/main.css", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
}

func BenchmarkMiddlewareChain(b *testing.B) {
	r := router.New()
	for i := 0; i < 5; i++ {
		r.Use(func(ctx *router.Context, next router.Next) error {
			return next()
		})
	}
	r.Get("/chained", func(ctx *router.Context) error {
		return ctx.String("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/chained", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
}

func BenchmarkNotFound(b *testing.B) {
	r := router.New()
	r.Get("/exists", func(ctx *router.Context) error {
		return ctx.String("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
}
