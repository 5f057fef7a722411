// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics exposes prometheus collectors for the catalog store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reload reasons.
const (
	ReasonStartup   = "startup"
	ReasonRecovery  = "recovery"
	ReasonScheduled = "scheduled"
	ReasonSeed      = "seed"
)

// Catalog holds the catalog store collectors. A nil *Catalog is valid and records nothing.
type Catalog struct {
	remoteErrors *prometheus.CounterVec
	reloads      *prometheus.CounterVec
	items        *prometheus.GaugeVec
}

// NewCatalog creates the collectors and registers them with reg.
func NewCatalog(reg prometheus.Registerer) (*Catalog, error) {
	c := &Catalog{
		remoteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_catalog_remote_errors_total",
			Help: "Remote store calls that reported an error",
		}, []string{"table", "op"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_catalog_reloads_total",
			Help: "Full catalog reloads by reason",
		}, []string{"reason"}),
		items: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "folio_catalog_items",
			Help: "Items currently cached per collection",
		}, []string{"collection"}),
	}

	for _, col := range []prometheus.Collector{c.remoteErrors, c.reloads, c.items} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RemoteError counts a failed remote call.
func (c *Catalog) RemoteError(table, op string) {
	if c == nil {
		return
	}
	c.remoteErrors.WithLabelValues(table, op).Inc()
}

// Reload counts a full reload.
func (c *Catalog) Reload(reason string) {
	if c == nil {
		return
	}
	c.reloads.WithLabelValues(reason).Inc()
}

// Items sets the cached item count of a collection.
func (c *Catalog) Items(collection string, n int) {
	if c == nil {
		return
	}
	c.items.WithLabelValues(collection).Set(float64(n))
}
