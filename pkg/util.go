package pkg

import (
	"net"
	"net/http"
)

// ReadUserIP tries the forwarding headers first, then falls back
// to the remote address of the connection.
func ReadUserIP(r *http.Request) (string, error) {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		ipAddr = r.Header.Get("X-Forwarded-For")
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}

	if ipAddr == "::1" || ipAddr == "127.0.0.1" {
		return "localhost", nil
	}

	return ipAddr, nil
}
