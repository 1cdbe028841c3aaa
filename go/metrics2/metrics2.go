// Package metrics2 is a small facade over the Prometheus client library.
// Metrics are identified by a measurement name plus a set of tags, and are
// created on first use.
package metrics2

import (
	"net"
	"net/http"

	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter is a metric which only goes up.
type Counter interface {
	Inc(i int64)
	Get() int64
}

// Client creates metrics.
type Client interface {
	// GetCounter returns the Counter for the given name and tags, creating it
	// if needed. Repeated calls with the same name and tags return the same
	// Counter.
	GetCounter(name string, tags ...map[string]string) Counter
}

var defaultClient Client = newPromClient(prometheus.DefaultRegisterer)

// NewClient returns a Client that registers its metrics with reg.
func NewClient(reg prometheus.Registerer) Client {
	return newPromClient(reg)
}

// DefaultClient returns the Client that registers with the default
// Prometheus registry, the one Serve exposes.
func DefaultClient() Client {
	return defaultClient
}

// GetCounter calls GetCounter on the default Client, which registers with
// the default Prometheus registry.
func GetCounter(name string, tags ...map[string]string) Counter {
	return defaultClient.GetCounter(name, tags...)
}

// Serve exposes the default Prometheus registry at /metrics on the given
// address, e.g. ":20000". The listener is opened before returning, so a bad
// address is reported to the caller, and the returned server's Addr is the
// bound address.
func Serve(addr string) (*http.Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, skerr.Wrapf(err, "listening on %s for metrics", addr)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: l.Addr().String(), Handler: mux}
	go func() {
		if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
			sklog.Errorf("Metrics server on %s failed: %s", addr, err)
		}
	}()
	sklog.Infof("Serving metrics at http://%s/metrics", l.Addr())
	return srv, nil
}
