// Package allocmetrics exposes a segregated allocator's pool occupancy and
// counters as Prometheus metrics.
package allocmetrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/memkit/mem/alloc"
)

// Source is the slice of the allocator the collector reads.
type Source interface {
	Pools() []alloc.PoolStats
	Stats() alloc.Stats
}

var _ Source = (*alloc.Segregated)(nil)

// Collector reports the state of one allocator at scrape time. The
// allocator is not synchronized, so scrapes must be serialized with the
// allocator's other callers.
type Collector struct {
	src Source

	poolBlocks   *prometheus.Desc
	poolCapacity *prometheus.Desc
	operations   *prometheus.Desc
	failures     *prometheus.Desc
}

// NewCollector returns a collector over src. constLabels are attached to
// every series, e.g. to tell several allocators apart.
func NewCollector(src Source, constLabels prometheus.Labels) *Collector {
	return &Collector{
		src: src,
		poolBlocks: prometheus.NewDesc(
			"memkit_alloc_pool_blocks",
			"Blocks in each pool by state",
			[]string{"pool", "block_size", "state"},
			constLabels,
		),
		poolCapacity: prometheus.NewDesc(
			"memkit_alloc_pool_capacity_bytes",
			"Usable bytes each pool was configured with",
			[]string{"pool", "block_size"},
			constLabels,
		),
		operations: prometheus.NewDesc(
			"memkit_alloc_operations_total",
			"Allocator operations by kind",
			[]string{"op"},
			constLabels,
		),
		failures: prometheus.NewDesc(
			"memkit_alloc_failures_total",
			"Rejected allocator operations by reason",
			[]string{"reason"},
			constLabels,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.poolBlocks
	ch <- c.poolCapacity
	ch <- c.operations
	ch <- c.failures
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for i, ps := range c.src.Pools() {
		pool, bsize := strconv.Itoa(i), strconv.Itoa(ps.BlockSize)
		ch <- prometheus.MustNewConstMetric(c.poolBlocks, prometheus.GaugeValue, float64(ps.Used), pool, bsize, "used")
		ch <- prometheus.MustNewConstMetric(c.poolBlocks, prometheus.GaugeValue, float64(ps.Free), pool, bsize, "free")
		ch <- prometheus.MustNewConstMetric(c.poolCapacity, prometheus.GaugeValue, float64(ps.Capacity*ps.BlockSize), pool, bsize)
	}

	st := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.Allocs), "alloc")
	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.Frees), "free")
	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.Reallocs), "realloc")
	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.ReallocInPlace), "realloc_in_place")
	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.Escalations), "escalation")

	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(st.OutOfMemory), "out_of_memory")
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(st.InvalidFrees), "invalid_free")
}
