package http

import (
	"net"
	"net/http"
	"net/netip"
	"slices"
	"strings"
	"sync/atomic"
)

// securityMetrics counts requests refused or flagged by withSecurity.
type securityMetrics struct {
	rateLimitHits      int64
	suspiciousRequests int64
}

// Forwarding headers are only honoured from these networks.
var trustedProxies = []netip.Prefix{
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("::1/128"),
}

func isTrustedProxy(addr netip.Addr) bool {
	addr = addr.Unmap()
	return slices.ContainsFunc(trustedProxies, func(p netip.Prefix) bool { return p.Contains(addr) })
}

// extractClientIP returns the address rate limiting and logs are keyed by.
// X-Forwarded-For, then X-Real-IP, replace the peer address only when the
// peer is a trusted proxy and the header holds a valid address.
func extractClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(peer)
	if err != nil || !isTrustedProxy(addr) {
		return peer
	}

	forwarded, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	for _, candidate := range []string{forwarded, r.Header.Get("X-Real-IP")} {
		candidate = strings.TrimSpace(candidate)
		if _, err := netip.ParseAddr(candidate); err == nil {
			return candidate
		}
	}
	return peer
}

// Probe signatures. Filing searches are plain names and places, so none of
// these occur in legitimate traffic.
var (
	probeFragments = []string{
		"../", "..\\", ".env", ".git", ".ssh", "wp-admin", "phpmyadmin",
		".php", "etc/passwd", "cmd.exe", "<script", "javascript:",
		"union select", "eval(",
	}
	scannerAgents = []string{
		"sqlmap", "nmap", "nikto", "gobuster", "dirb", "masscan", "zgrab", "scanner",
	}
	probeMethods = []string{"TRACE", "TRACK", "DEBUG", "CONNECT"}
)

const maxURLLength = 2048

func containsAnyFold(s string, fragments []string) bool {
	s = strings.ToLower(s)
	return slices.ContainsFunc(fragments, func(f string) bool { return strings.Contains(s, f) })
}

// detectSuspiciousRequest reports whether r looks like a scanner or an
// injection probe and counts it in metrics. Flagged requests are still served.
func detectSuspiciousRequest(r *http.Request, metrics *securityMetrics) bool {
	suspicious := containsAnyFold(r.URL.Path, probeFragments) ||
		containsAnyFold(r.URL.RawQuery, probeFragments) ||
		containsAnyFold(r.Header.Get("User-Agent"), scannerAgents) ||
		slices.Contains(probeMethods, r.Method) ||
		len(r.URL.String()) > maxURLLength ||
		strings.Count(r.Header.Get("X-Forwarded-For"), ",") > 5

	if suspicious && metrics != nil {
		atomic.AddInt64(&metrics.suspiciousRequests, 1)
	}
	return suspicious
}
