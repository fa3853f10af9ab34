package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// PingTimeout bounds each reachability check
const PingTimeout = 1500 * time.Millisecond

// PingService checks if a TCP listener is reachable at the given URL
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Hostname() == "" {
		return fmt.Errorf("invalid URL: missing host in %q", serviceURL)
	}

	port := parsedURL.Port()
	if port == "" {
		switch parsedURL.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}

	address := net.JoinHostPort(parsedURL.Hostname(), port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// ServerURL is the local URL of the HTTP server for a listen host and port.
// Wildcard hosts are pinged on loopback.
func ServerURL(host, port string) string {
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// PingServer checks if the HTTP server is accepting connections
func PingServer(host, port string) error {
	return PingService(ServerURL(host, port), PingTimeout)
}
