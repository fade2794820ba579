package health

import (
	"context"
	"net"
	"net/url"
	"time"
)

func inspectEndpoint(ctx context.Context, raw string, probe bool, timeout time.Duration) *EndpointInfo {
	info := &EndpointInfo{URL: raw}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		info.Error = "invalid endpoint URL"
		return info
	}
	info.Host = u.Host
	if !probe {
		return info
	}

	addr := u.Host
	if u.Port() == "" {
		port := "80"
		if u.Scheme == "https" {
			port = "443"
		}
		addr = net.JoinHostPort(u.Hostname(), port)
	}

	// Dial only; a POST would reach the service as a real question.
	dialer := net.Dialer{Timeout: timeout}
	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	ok := err == nil
	info.Reachable = &ok
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.LatencyMS = time.Since(start).Milliseconds()
	_ = conn.Close()
	return info
}
