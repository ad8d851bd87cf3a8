package application

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

type callbackURLs struct {
	success string
	cancel  string
	failure string
}

// resolveBaseURL prefers the configured frontend URL unless it is empty or points at a
// development host, in which case the caller-supplied origin wins.
func resolveBaseURL(configured, origin string) string {
	base := strings.TrimRight(strings.TrimSpace(configured), "/")
	if base == "" || isLocalURL(base) {
		if o := strings.TrimRight(strings.TrimSpace(origin), "/"); o != "" && o != "null" {
			return o
		}
	}
	return base
}

func buildCallbackURLs(base string, orderID int64) callbackURLs {
	cancel := fmt.Sprintf("%s/payment-cancel?order_id=%d", base, orderID)
	return callbackURLs{
		success: fmt.Sprintf("%s/payment-success?order_id=%d", base, orderID),
		cancel:  cancel,
		failure: cancel,
	}
}

func isLocalURL(raw string) bool {
	if strings.Contains(raw, "localhost") {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := parsed.Hostname()
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback() || ip.IsUnspecified()
	}
	return false
}
