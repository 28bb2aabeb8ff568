package httpclient

import (
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/todoview/internal/config"
)

func TestNewClient(t *testing.T) {
	c := NewClient(config.APIConfig{Timeout: 2 * time.Second, MaxConns: 3}, "todoview")
	if c.MaxConnsPerHost != 3 {
		t.Errorf("MaxConnsPerHost = %d, want 3", c.MaxConnsPerHost)
	}
	if c.ReadTimeout != 2*time.Second || c.WriteTimeout != 2*time.Second {
		t.Errorf("timeouts = %v/%v, want 2s", c.ReadTimeout, c.WriteTimeout)
	}
	if c.Name != "todoview" {
		t.Errorf("Name = %q", c.Name)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(config.APIConfig{}, "")
	if c.MaxConnsPerHost != fasthttp.DefaultMaxConnsPerHost {
		t.Errorf("MaxConnsPerHost = %d, want default", c.MaxConnsPerHost)
	}
	if c.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", c.ReadTimeout)
	}
}
