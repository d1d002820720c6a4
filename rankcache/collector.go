// SPDX-License-Identifier: MIT

package rankcache

import (
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports storage metrics of a Pebble cache.
type Collector struct {
	db *pebble.DB

	compactions  *prometheus.Desc
	memtableSize *prometheus.Desc
	memtables    *prometheus.Desc
	walFiles     *prometheus.Desc
	walBytesIn   *prometheus.Desc
	diskUsage    *prometheus.Desc
}

// Collector returns a prometheus collector reading c's database metrics on
// every scrape.
func (c *Pebble) Collector() *Collector {
	return &Collector{
		db: c.db,
		compactions: prometheus.NewDesc(
			"exactla_rankcache_compactions_total",
			"Compactions performed by the rank cache store",
			nil, nil,
		),
		memtableSize: prometheus.NewDesc(
			"exactla_rankcache_memtable_bytes",
			"Bytes allocated by memtables",
			nil, nil,
		),
		memtables: prometheus.NewDesc(
			"exactla_rankcache_memtables",
			"Number of memtables",
			nil, nil,
		),
		walFiles: prometheus.NewDesc(
			"exactla_rankcache_wal_files",
			"Live WAL files",
			nil, nil,
		),
		walBytesIn: prometheus.NewDesc(
			"exactla_rankcache_wal_bytes_in_total",
			"Logical bytes written to the WAL",
			nil, nil,
		),
		diskUsage: prometheus.NewDesc(
			"exactla_rankcache_disk_bytes",
			"Total disk space used by the store",
			nil, nil,
		),
	}
}

func (pc *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- pc.compactions
	ch <- pc.memtableSize
	ch <- pc.memtables
	ch <- pc.walFiles
	ch <- pc.walBytesIn
	ch <- pc.diskUsage
}

func (pc *Collector) Collect(ch chan<- prometheus.Metric) {
	m := pc.db.Metrics()

	ch <- prometheus.MustNewConstMetric(pc.compactions, prometheus.CounterValue, float64(m.Compact.Count))
	ch <- prometheus.MustNewConstMetric(pc.memtableSize, prometheus.GaugeValue, float64(m.MemTable.Size))
	ch <- prometheus.MustNewConstMetric(pc.memtables, prometheus.GaugeValue, float64(m.MemTable.Count))
	ch <- prometheus.MustNewConstMetric(pc.walFiles, prometheus.GaugeValue, float64(m.WAL.Files))
	ch <- prometheus.MustNewConstMetric(pc.walBytesIn, prometheus.CounterValue, float64(m.WAL.BytesIn))
	ch <- prometheus.MustNewConstMetric(pc.diskUsage, prometheus.GaugeValue, float64(m.DiskSpaceUsage()))
}
