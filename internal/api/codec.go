// Package api defines the SplitStuff RPC surface: message types, procedure
// names, and Connect handler and client constructors.
//
// Messages are plain Go structs carried as JSON, so no generated code is
// involved. Every handler and client built here is wired with Codec.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PackagePrefix is the path prefix shared by every procedure.
const PackagePrefix = "/splitstuff.v1."

// Codec marshals messages as JSON. It registers under the name "json", so
// clients send Content-Type application/json (or application/connect+json
// for streams).
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

var codecOption = connect.WithCodec(Codec{})

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{codecOption}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{codecOption}, opts...)
}

// serviceMux routes a service's procedures and answers 404 for anything else
// under its prefix.
func serviceMux(handlers ...*procedureHandler) http.Handler {
	routes := make(map[string]http.Handler, len(handlers))
	for _, h := range handlers {
		routes[h.procedure] = h.handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

type procedureHandler struct {
	procedure string
	handler   http.Handler
}

func unaryRoute[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) *procedureHandler {
	return &procedureHandler{
		procedure: procedure,
		handler:   connect.NewUnaryHandler(procedure, fn, handlerOptions(opts)...),
	}
}

func unaryClient[Req, Res any](httpClient connect.HTTPClient, url, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, baseURL(url)+procedure, clientOptions(opts)...)
}

func baseURL(url string) string {
	return strings.TrimRight(url, "/")
}
