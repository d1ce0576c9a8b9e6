// Package prometheus exports crawl progress as Prometheus metrics.
package prometheus

import (
	"fmt"
	"net/http"

	"github.com/fwojciec/webcollage"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ensure Recorder implements webcollage.Recorder.
var _ webcollage.Recorder = (*Recorder)(nil)

// Recorder counts crawl events. It is safe for concurrent use.
type Recorder struct {
	admitted  prom.Counter
	scanned   prom.Counter
	links     prom.Counter
	queued    prom.Counter
	delivered *prom.CounterVec
	failures  *prom.CounterVec
	pending   prom.Gauge
	buffered  prom.Gauge
}

// NewRecorder registers the collectors against reg.
func NewRecorder(reg prom.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	r := &Recorder{
		admitted: prom.NewCounter(prom.CounterOpts{
			Name: "webcollage_urls_admitted_total",
			Help: "URLs admitted to the frontier.",
		}),
		scanned: prom.NewCounter(prom.CounterOpts{
			Name: "webcollage_pages_scanned_total",
			Help: "HTML pages whose links were extracted.",
		}),
		links: prom.NewCounter(prom.CounterOpts{
			Name: "webcollage_links_extracted_total",
			Help: "Links found on scanned pages, before deduplication.",
		}),
		queued: prom.NewCounter(prom.CounterOpts{
			Name: "webcollage_images_queued_total",
			Help: "Images handed to the delivery channel.",
		}),
		delivered: prom.NewCounterVec(prom.CounterOpts{
			Name: "webcollage_images_delivered_total",
			Help: "Images given to the display sink partitioned by result.",
		}, []string{"result"}),
		failures: prom.NewCounterVec(prom.CounterOpts{
			Name: "webcollage_failures_total",
			Help: "URLs dropped partitioned by error code.",
		}, []string{"code"}),
		pending: prom.NewGauge(prom.GaugeOpts{
			Name: "webcollage_frontier_pending",
			Help: "URLs waiting in the frontier at the last delivery.",
		}),
		buffered: prom.NewGauge(prom.GaugeOpts{
			Name: "webcollage_delivery_buffered",
			Help: "Images waiting in the delivery channel at the last delivery.",
		}),
	}
	for _, c := range []prom.Collector{
		r.admitted,
		r.scanned,
		r.links,
		r.queued,
		r.delivered,
		r.failures,
		r.pending,
		r.buffered,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register crawl collector: %w", err)
		}
	}
	return r, nil
}

// Record updates the collectors for one event.
func (r *Recorder) Record(e webcollage.Event) {
	switch e.Type {
	case webcollage.EventAdmitted:
		r.admitted.Inc()
	case webcollage.EventPageScanned:
		r.scanned.Inc()
		r.links.Add(float64(e.Links))
	case webcollage.EventImageQueued:
		r.queued.Inc()
	case webcollage.EventImageDelivered:
		result := "ok"
		if e.Err != nil {
			result = "error"
		}
		r.delivered.WithLabelValues(result).Inc()
		r.pending.Set(float64(e.Pending))
		r.buffered.Set(float64(e.Buffered))
	case webcollage.EventFailed:
		r.failures.WithLabelValues(webcollage.ErrorCode(e.Err)).Inc()
	}
}

// Handler serves the metrics gathered by g in the text exposition format.
func Handler(g prom.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
