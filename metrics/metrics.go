// Package metrics exposes the prometheus collectors of the orders API.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics tracks stock movements caused by order lines.
type InventoryMetrics struct {
	unitsDebited  prometheus.Counter
	unitsCredited prometheus.Counter
	linesRejected *prometheus.CounterVec
}

var (
	inventoryOnce    sync.Once
	inventoryMetrics *InventoryMetrics
)

// Inventory returns the process-wide inventory metrics registered on the
// default registerer.
func Inventory() *InventoryMetrics {
	inventoryOnce.Do(func() {
		inventoryMetrics = NewInventoryMetrics(prometheus.DefaultRegisterer)
	})
	return inventoryMetrics
}

// NewInventoryMetrics registers the inventory collectors on registerer,
// reusing collectors that are already registered.
func NewInventoryMetrics(registerer prometheus.Registerer) *InventoryMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &InventoryMetrics{
		unitsDebited: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_api_units_debited_total",
			Help: "Total product units taken from stock by order lines",
		}),
		unitsCredited: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_api_units_credited_total",
			Help: "Total product units given back to stock by order lines",
		}),
		linesRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_api_order_lines_rejected_total",
			Help: "Total order lines rejected by validation, by first failing field",
		}, []string{"field"}),
	}
}

// RecordDebit counts units taken from a product.
func (m *InventoryMetrics) RecordDebit(units int) {
	m.unitsDebited.Add(float64(units))
}

// RecordCredit counts units returned to a product.
func (m *InventoryMetrics) RecordCredit(units int) {
	m.unitsCredited.Add(float64(units))
}

// RecordRejected counts an order line that failed validation.
func (m *InventoryMetrics) RecordRejected(field string) {
	m.linesRejected.WithLabelValues(field).Inc()
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
