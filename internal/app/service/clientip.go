package service

import (
	"net"
	"strings"
)

// UnidentifiedAddress is recorded when no request attribute carries a usable address.
const UnidentifiedAddress = "unidentified"

// ClientInfo is the request provenance captured at signing time.
type ClientInfo struct {
	ForwardedFor string // X-Forwarded-For
	RealIP       string // X-Real-IP
	ClientIP     string // X-Client-IP
	RemoteAddr   string
	UserAgent    string
}

// ResolveAddress picks the first parseable address from the forwarded-for chain head,
// X-Real-IP, X-Client-IP and the connection address, in that order. It never fails.
func ResolveAddress(c ClientInfo) string {
	forwarded, _, _ := strings.Cut(c.ForwardedFor, ",")

	for _, candidate := range []string{forwarded, c.RealIP, c.ClientIP, hostOnly(c.RemoteAddr)} {
		if ip := net.ParseIP(strings.TrimSpace(candidate)); ip != nil {
			return ip.String()
		}
	}
	return UnidentifiedAddress
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return addr
	}
	return host
}
