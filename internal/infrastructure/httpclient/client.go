package httpclient

import (
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/todoview/internal/config"
)

// NewClient creates the fasthttp client shared by all API calls.
func NewClient(cfg config.APIConfig, name string) *fasthttp.Client {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = fasthttp.DefaultMaxConnsPerHost
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &fasthttp.Client{
		Name:                     name,
		MaxConnsPerHost:          maxConns,
		ReadTimeout:              timeout,
		WriteTimeout:             timeout,
		MaxIdleConnDuration:      30 * time.Second,
		NoDefaultUserAgentHeader: name != "",
	}
}
