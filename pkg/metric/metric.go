// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the operation counters for all Ignite components.
type Metrics struct {
	// AMM metrics
	TokensBought prometheus.Counter
	TokensSold   prometheus.Counter

	// Order book metrics
	OrdersPlaced    *prometheus.CounterVec
	OrdersCancelled prometheus.Counter

	// Vault metrics
	VaultLocks   prometheus.Counter
	VaultUnlocks prometheus.Counter

	// Launchpad metrics
	ProjectsCreated prometheus.Counter
	TokensLaunched  prometheus.Counter
	VestingClaims   prometheus.Counter

	// Failed entry-point calls, labelled by component.
	CallErrors *prometheus.CounterVec
}

// New creates a metrics instance registered against reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		TokensBought: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "amm_buys_total",
			Help:      "Total number of AMM buy trades executed",
		}),
		TokensSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "amm_sells_total",
			Help:      "Total number of AMM sell trades executed",
		}),
		OrdersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "orderbook_orders_placed_total",
			Help:      "Total number of limit orders placed",
		}, []string{"side"}),
		OrdersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "orderbook_orders_cancelled_total",
			Help:      "Total number of limit orders cancelled",
		}),
		VaultLocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "vault_locks_total",
			Help:      "Total number of vault escrow locks",
		}),
		VaultUnlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "vault_unlocks_total",
			Help:      "Total number of vault escrow unlocks",
		}),
		ProjectsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "launchpad_projects_created_total",
			Help:      "Total number of launchpad projects created",
		}),
		TokensLaunched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "launchpad_tokens_launched_total",
			Help:      "Total number of tokens launched",
		}),
		VestingClaims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "launchpad_vesting_claims_total",
			Help:      "Total number of vesting claims paid out",
		}),
		CallErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignite",
			Name:      "call_errors_total",
			Help:      "Total number of failed entry-point calls",
		}, []string{"component"}),
	}

	for _, c := range []prometheus.Collector{
		m.TokensBought,
		m.TokensSold,
		m.OrdersPlaced,
		m.OrdersCancelled,
		m.VaultLocks,
		m.VaultUnlocks,
		m.ProjectsCreated,
		m.TokensLaunched,
		m.VestingClaims,
		m.CallErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
