package security

import (
	"net"
	"strings"
)

// ClientKey identifies the caller for rate limiting: the first X-Forwarded-For
// entry when present, otherwise the direct peer address without its port.
func ClientKey(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
