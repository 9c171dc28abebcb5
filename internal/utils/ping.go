package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// authorizer answers fast on its TCP port; anything longer means down
const authorizerPingTimeout = 1500 * time.Millisecond

// PingHost checks that the host behind serviceURL accepts TCP connections.
func PingHost(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()
	if port == "" {
		if parsedURL.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	address := net.JoinHostPort(host, port)
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingAuthorizer checks if the Authorizer identity provider is reachable
func PingAuthorizer(authzURL string) error {
	return PingHost(authzURL, authorizerPingTimeout)
}
