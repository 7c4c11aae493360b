package chi

import (
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the handlers of the HTTP API.
type ServerInterface interface {
	// (POST /v1/rank)
	Rank(w http.ResponseWriter, r *http.Request)
	// (POST /v1/rank/{kind})
	RankDomain(w http.ResponseWriter, r *http.Request, kind string, params RankDomainParams)
	// (POST /v1/exact-match/{kind})
	ExactMatch(w http.ResponseWriter, r *http.Request, kind string)
	// (GET /v1/normalize)
	Normalize(w http.ResponseWriter, r *http.Request, params NormalizeParams)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter       gochi.Router
	Middlewares      []func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// ParamError reports a path or query parameter that failed to bind.
type ParamError struct {
	Name string
	Err  error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %v", e.Name, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// Handler mounts si on a new chi router with default options.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions mounts si on options.BaseRouter.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = gochi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	w := &serverWrapper{handler: si, middlewares: options.Middlewares, errorHandler: options.ErrorHandlerFunc}

	r.Post("/v1/rank", w.Rank)
	r.Post("/v1/rank/{kind}", w.RankDomain)
	r.Post("/v1/exact-match/{kind}", w.ExactMatch)
	r.Get("/v1/normalize", w.Normalize)
	r.Get("/health", w.HealthCheck)
	r.Get("/metrics", w.Metrics)

	return r
}

type serverWrapper struct {
	handler      ServerInterface
	middlewares  []func(http.Handler) http.Handler
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (sw *serverWrapper) serve(w http.ResponseWriter, r *http.Request, h http.Handler) {
	for _, m := range sw.middlewares {
		h = m(h)
	}
	h.ServeHTTP(w, r)
}

func (sw *serverWrapper) bindKind(w http.ResponseWriter, r *http.Request) (string, bool) {
	var kind string
	err := runtime.BindStyledParameterWithOptions("simple", "kind", gochi.URLParam(r, "kind"), &kind,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		sw.errorHandler(w, r, &ParamError{Name: "kind", Err: err})
		return "", false
	}
	return kind, true
}

func (sw *serverWrapper) Rank(w http.ResponseWriter, r *http.Request) {
	sw.serve(w, r, http.HandlerFunc(sw.handler.Rank))
}

func (sw *serverWrapper) RankDomain(w http.ResponseWriter, r *http.Request) {
	kind, ok := sw.bindKind(w, r)
	if !ok {
		return
	}

	var params RankDomainParams
	err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		sw.errorHandler(w, r, &ParamError{Name: "limit", Err: err})
		return
	}

	sw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw.handler.RankDomain(w, r, kind, params)
	}))
}

func (sw *serverWrapper) ExactMatch(w http.ResponseWriter, r *http.Request) {
	kind, ok := sw.bindKind(w, r)
	if !ok {
		return
	}
	sw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw.handler.ExactMatch(w, r, kind)
	}))
}

func (sw *serverWrapper) Normalize(w http.ResponseWriter, r *http.Request) {
	var params NormalizeParams
	err := runtime.BindQueryParameter("form", true, true, "text", r.URL.Query(), &params.Text)
	if err != nil {
		sw.errorHandler(w, r, &ParamError{Name: "text", Err: err})
		return
	}
	sw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw.handler.Normalize(w, r, params)
	}))
}

func (sw *serverWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	sw.serve(w, r, http.HandlerFunc(sw.handler.HealthCheck))
}

func (sw *serverWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	sw.serve(w, r, http.HandlerFunc(sw.handler.Metrics))
}
