package util

import (
	"net/http"
	"net/netip"
	"strings"
)

// clientIPHeaders are consulted in order; the first non-empty value wins
var clientIPHeaders = []string{
	"CF-Connecting-IP",
	"X-Real-IP",
	"X-Forwarded-For",
	"X-Client-IP",
	"True-Client-IP",
}

// ClientIP extracts the raw client IP from proxy headers, or "" when none is set.
// For a list-valued header only the first hop is used.
func ClientIP(h http.Header) string {
	for _, name := range clientIPHeaders {
		value := h.Get(name)
		if value == "" {
			continue
		}
		if ip := strings.TrimSpace(strings.Split(value, ",")[0]); ip != "" {
			return ip
		}
	}
	return ""
}

// AnonymizeIP keeps the /24 network of an IPv4 address or the /64 network of
// an IPv6 address and zeroes the host bits. Unparseable input yields "".
func AnonymizeIP(ip string) string {
	addr, err := netip.ParseAddr(strings.Trim(ip, "[]"))
	if err != nil {
		return ""
	}
	addr = addr.Unmap().WithZone("")

	bits := 64
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return ""
	}
	return prefix.Addr().String()
}

// IsPublicIP reports whether ip parses and is neither loopback, private,
// link-local nor unspecified
func IsPublicIP(ip string) bool {
	addr, err := netip.ParseAddr(strings.Trim(ip, "[]"))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return !(addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast())
}
