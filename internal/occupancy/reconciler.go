// Package occupancy derives table status from device sessions on a fixed
// interval. When enabled, "occupied" means "has at least one checked-in
// device" and manual status writes are overwritten on the next sweep.
package occupancy

import (
	"context"
	"log"
	"time"

	"tableorder-backend/config"
	"tableorder-backend/internal/store"
)

// Reconciler periodically reconciles table occupancy with device sessions.
type Reconciler struct {
	interval time.Duration
	store    store.Store
}

// New creates a reconciler from the occupancy configuration.
func New(cfg *config.OccupancyConfig, s store.Store) *Reconciler {
	return &Reconciler{interval: cfg.Interval, store: s}
}

// Run sweeps until the context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	log.Printf("Occupancy reconciler started, interval %s", r.interval)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.ReconcileOnce(ctx)
		case <-ctx.Done():
			log.Println("Occupancy reconciler shutting down")
			return
		}
	}
}

// ReconcileOnce performs a single sweep.
func (r *Reconciler) ReconcileOnce(ctx context.Context) {
	changed, err := r.store.ReconcileOccupancy(ctx)
	if err != nil {
		log.Printf("Occupancy reconciliation failed: %v", err)
		return
	}
	if changed > 0 {
		log.Printf("Occupancy reconciliation updated %d tables", changed)
	}
}
