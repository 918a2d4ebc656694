package http

import (
	"net/http"
	"strings"
)

// RouterConfig collects the handlers and middleware the router wires up.
// Nil handlers leave their routes unregistered.
type RouterConfig struct {
	Allocations *AllocationHandler
	Rooms       *RoomHandler
	Audit       *AuditHandler
	Middleware  []func(http.Handler) http.Handler
}

// NewRouter assembles the HTTP surface on the standard mux and wraps it in
// the configured middleware, outermost first.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Lecture Allocator API"}` + "\n"))
	})

	if cfg.Allocations != nil {
		mux.HandleFunc("/resolve-conflict", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Allocations.ResolveConflict(w, r)
		})
		mux.HandleFunc("/allocations", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Allocations.ListSessions(w, r)
		})
	}

	if cfg.Rooms != nil {
		mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Rooms.List(w, r)
		})
	}

	if cfg.Audit != nil {
		mux.HandleFunc("/decision-logs", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Audit.ListDecisionLogs(w, r)
		})
		mux.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Audit.ListNotifications(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
