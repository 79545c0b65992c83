// Package pprofserver exposes the net/http/pprof handlers on a loopback-only
// listener so profiling never rides on the public port.
package pprofserver

import (
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
)

// Handle registers the pprof handlers on the given mux.
func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

// Launch serves the pprof handlers at the ipv6 loopback address ::1 and the
// given port, e.g. ":6060". It never returns control to the caller's
// goroutine; a listen failure exits the process.
func Launch(port string, logger *slog.Logger) {
	go func() {
		mux := http.NewServeMux()
		Handle(mux)
		addr := "[::1]" + port
		logger.Info("starting pprof server", "addr", addr)
		err := http.ListenAndServe(addr, mux)
		logger.Error(err.Error())
		os.Exit(0)
	}()
}
