package metrics2

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// invalidChar is used to force metric and tag names to conform to Prometheus's restrictions.
	invalidChar = regexp.MustCompile("([^a-zA-Z0-9_:])")
)

func clean(s string) string {
	return invalidChar.ReplaceAllLiteralString(s, "_")
}

// promCounter implements the Counter interface.
type promCounter struct {
	// i tracks the value of the gauge, because prometheus client lib doesn't
	// support get on Gauge values.
	i     int64
	gauge prometheus.Gauge
}

func (c *promCounter) Get() int64 {
	return atomic.LoadInt64(&c.i)
}

func (c *promCounter) Inc(i int64) {
	c.gauge.Set(float64(atomic.AddInt64(&c.i, i)))
}

// promClient implements the Client interface.
type promClient struct {
	reg prometheus.Registerer

	mtx       sync.Mutex
	gaugeVecs map[string]*prometheus.GaugeVec
	counters  map[string]*promCounter
}

func newPromClient(reg prometheus.Registerer) *promClient {
	return &promClient{
		reg:       reg,
		gaugeVecs: map[string]*prometheus.GaugeVec{},
		counters:  map[string]*promCounter{},
	}
}

// commonGet does the name and tag cleaning for GetCounter.
//
// It returns:
//
//	measurement - A clean measurement name.
//	cleanTags   - A clean set of tags.
//	keys        - A slice of the keys of cleanTags, sorted.
//	counterKey  - A name to uniquely identify the metric.
//	gaugeVecKey - A name to uniquely identify the collection of metrics. See the Prometheus
//	              docs about Collections.
func (p *promClient) commonGet(measurement string, tags ...map[string]string) (string, map[string]string, []string, string, string) {
	measurement = clean(measurement)

	// Merge all tags, later maps win.
	cleanTags := map[string]string{}
	for _, t := range tags {
		for k, v := range t {
			cleanTags[clean(k)] = v
		}
	}
	keys := make([]string, 0, len(cleanTags))
	for k := range cleanTags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	counterKeySrc := []string{measurement}
	for _, key := range keys {
		counterKeySrc = append(counterKeySrc, key, cleanTags[key])
	}
	counterKey := strings.Join(counterKeySrc, "-")
	gaugeVecKey := fmt.Sprintf("%s %v", measurement, keys)

	return measurement, cleanTags, keys, counterKey, gaugeVecKey
}

// GetCounter implements Client.
func (p *promClient) GetCounter(name string, tags ...map[string]string) Counter {
	measurement, cleanTags, keys, counterKey, gaugeVecKey := p.commonGet(name, tags...)

	p.mtx.Lock()
	defer p.mtx.Unlock()
	if ret, ok := p.counters[counterKey]; ok {
		return ret
	}
	sklog.Debugf("GetCounter: %s %s", counterKey, gaugeVecKey)

	// Didn't find the metric, so we need to look for a GaugeVec to create it under.
	gaugeVec, ok := p.gaugeVecs[gaugeVecKey]
	if !ok {
		gaugeVec = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: measurement,
				Help: measurement,
			},
			keys,
		)
		if err := p.reg.Register(gaugeVec); err != nil {
			sklog.Fatalf("Failed to register %q: %s", measurement, err)
		}
		p.gaugeVecs[gaugeVecKey] = gaugeVec
	}
	gauge, err := gaugeVec.GetMetricWith(prometheus.Labels(cleanTags))
	if err != nil {
		sklog.Fatalf("Failed to get gauge: %s", err)
	}
	ret := &promCounter{
		gauge: gauge,
	}
	p.counters[counterKey] = ret
	return ret
}
