package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// RegisterPprof mounts the pprof handlers under /debug/pprof, gated by a
// CIDR allowlist. With no valid CIDR configured the handlers are not mounted
// at all, so the default deployment exposes no profiling surface.
func RegisterPprof(r chi.Router, allowedCIDRs []string, logger *slog.Logger) {
	nets := parseCIDRs(allowedCIDRs, logger)
	if len(nets) == 0 {
		logger.Info("profiling endpoints disabled, no allowlist configured")
		return
	}

	r.Group(func(r chi.Router) {
		r.Use(ipAllowlist(nets, logger))
		r.HandleFunc("/debug/pprof/*", pprof.Index)
		r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		r.HandleFunc("/debug/pprof/profile", pprof.Profile)
		r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		r.HandleFunc("/debug/pprof/trace", pprof.Trace)
	})
}

func parseCIDRs(cidrs []string, logger *slog.Logger) []*net.IPNet {
	var nets []*net.IPNet
	for _, cidr := range cidrs {
		if cidr == "" {
			continue
		}
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Warn("skipping invalid allowlist CIDR",
				slog.String("cidr", cidr),
				slog.String("error", err.Error()),
			)
			continue
		}
		nets = append(nets, ipNet)
	}
	return nets
}

// ipAllowlist rejects requests from outside the given networks. Rejections
// are 404s, not 403s, so probing clients cannot tell the debug routes exist.
func ipAllowlist(nets []*net.IPNet, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if ip := net.ParseIP(host); ip != nil {
				for _, n := range nets {
					if n.Contains(ip) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			logger.Warn("blocked profiling request",
				slog.String("ip", host),
				slog.String("path", r.URL.Path),
			)
			http.NotFound(w, r)
		})
	}
}
