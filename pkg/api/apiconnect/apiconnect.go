// Package apiconnect wires the api messages to Connect: one handler
// constructor and one typed client per service.
package apiconnect

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// PackageName prefixes every service name.
const PackageName = "settleup.v1"

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

// Client options are applied after the codec so callers can't switch to a
// protobuf codec the messages don't support.
func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append(append([]connect.ClientOption{}, opts...), connect.WithCodec(api.JSONCodec{}))
}

// route serves each procedure with its handler and 404s the rest of the
// service path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
