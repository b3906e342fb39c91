package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofPath is where PprofMux expects to be mounted.
const PprofPath = "/debug/pprof/"

// PprofMux returns an http.ServeMux with the net/http/pprof handlers registered
// under PprofPath. Named profiles (heap, goroutine, ...) are served by the index.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc(PprofPath, pprof.Index)
	mux.HandleFunc(PprofPath+"cmdline", pprof.Cmdline)
	mux.HandleFunc(PprofPath+"profile", pprof.Profile)
	mux.HandleFunc(PprofPath+"symbol", pprof.Symbol)
	mux.HandleFunc(PprofPath+"trace", pprof.Trace)

	return mux
}
