package http

import (
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"sync/atomic"
)

// securityMetrics counts requests the API turned away or flagged.
type securityMetrics struct {
	rateLimitHits      atomic.Int64
	suspiciousRequests atomic.Int64
}

// securityCounters is the read-only view of securityMetrics served on /readyz.
type securityCounters struct {
	RateLimitHits      int64 `json:"rateLimitHits"`
	SuspiciousRequests int64 `json:"suspiciousRequests"`
}

func (m *securityMetrics) snapshot() securityCounters {
	return securityCounters{
		RateLimitHits:      m.rateLimitHits.Load(),
		SuspiciousRequests: m.suspiciousRequests.Load(),
	}
}

// Forwarding headers are honoured only when the direct peer is loopback or private.
var trustedProxies = []netip.Prefix{
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("::1/128"),
}

func isTrustedProxy(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// extractClientIP returns the address rate limits are keyed on: the first
// X-Forwarded-For hop or X-Real-IP behind a trusted proxy, the peer otherwise.
func extractClientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		peer = ap.Addr().Unmap().String()
	}
	addr, err := netip.ParseAddr(peer)
	if err != nil || !isTrustedProxy(addr) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if a, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return a.String()
		}
	}
	if a, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return a.String()
	}
	return peer
}

// suspicionRule returns a non-empty reason when a request looks like probing.
type suspicionRule func(r *http.Request) string

// Everything the router serves lives under these prefixes.
var knownPrefixes = []string{"/api/", "/healthz", "/readyz"}

var (
	traversalMarkers = []string{"../", "..\\", "%2e%2e", "/.env", "/.git", "etc/passwd"}
	injectionMarkers = []string{"union select", "' or ", "<script", "javascript:", ";--", "sleep("}
	scannerAgents    = []string{"sqlmap", "nikto", "nmap", "masscan", "zgrab", "gobuster"}
)

var suspicionRules = []suspicionRule{
	func(r *http.Request) string {
		path := strings.ToLower(r.URL.EscapedPath())
		for _, m := range traversalMarkers {
			if strings.Contains(path, m) {
				return "path traversal"
			}
		}
		return ""
	},
	func(r *http.Request) string {
		for _, p := range knownPrefixes {
			if strings.HasPrefix(r.URL.Path, p) {
				return ""
			}
		}
		return "unknown route"
	},
	func(r *http.Request) string {
		query := strings.ToLower(r.URL.RawQuery)
		if q, err := url.QueryUnescape(query); err == nil {
			query = q
		}
		for _, m := range injectionMarkers {
			if strings.Contains(query, m) {
				return "query injection"
			}
		}
		return ""
	},
	func(r *http.Request) string {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			return ""
		}
		if r.ContentLength == 0 || strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			return ""
		}
		return "non-JSON body"
	},
	func(r *http.Request) string {
		ua := strings.ToLower(r.Header.Get("User-Agent"))
		for _, a := range scannerAgents {
			if strings.Contains(ua, a) {
				return "scanner user agent"
			}
		}
		return ""
	},
}

// detectSuspiciousRequest returns the first matching rule's reason, or "".
// Flagged requests are logged and counted, not rejected.
func detectSuspiciousRequest(r *http.Request, metrics *securityMetrics) string {
	for _, rule := range suspicionRules {
		if reason := rule(r); reason != "" {
			if metrics != nil {
				metrics.suspiciousRequests.Add(1)
			}
			return reason
		}
	}
	return ""
}

// setSecurityHeaders adds the headers every JSON response carries.
func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Cache-Control", "no-store")
}
