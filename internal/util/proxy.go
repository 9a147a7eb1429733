package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc creates a proxy selector for provider HTTP clients.
// With no explicit proxies configured it falls back to the environment.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		host := req.URL.Hostname()

		for _, exempt := range strings.Split(noProxy, ",") {
			exempt = strings.TrimSpace(exempt)
			if exempt == "" {
				continue
			}
			if host == exempt || strings.HasSuffix(host, "."+exempt) {
				return nil, nil
			}
		}

		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if req.URL.Scheme == "http" && httpProxy != "" {
			return url.Parse(httpProxy)
		}

		return nil, nil
	}
}
