package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"motorctl/internal/drive"
)

// readLimit caps a duty write request body. Anything this long is
// already over the drive-side input bound, so the exact cap only needs
// to be comfortably larger than a valid input.
const readLimit = 64

// Handler exposes the drive control plane over HTTP:
//
//	GET  /api/period  -> decimal microseconds, newline-terminated
//	POST /api/duty    -> duty-cycle percent as decimal text
//	GET  /api/status  -> JSON service snapshot
func Handler(svc *drive.Service) http.Handler {
	mux := http.NewServeMux()
	ctrl := svc.Control()

	mux.HandleFunc("/api/period", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, ctrl.ReadPeriod())
	})

	mux.HandleFunc("/api/duty", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, readLimit))
		if err != nil {
			http.Error(w, "read body failed", http.StatusBadRequest)
			return
		}
		if _, err := ctrl.WriteDuty(body); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, drive.ErrInputTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, "{\"ok\":true,\"duty\":%d}\n", svc.Snapshot().Duty)
	})

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		b, err := json.MarshalIndent(svc.Snapshot(), "", "  ")
		if err != nil {
			http.Error(w, "marshal failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
		_, _ = w.Write([]byte("\n"))
	})

	return mux
}
