// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistration(t *testing.T) {
	require := require.New(t)

	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(err)
	require.NotNil(m)

	m.TokensBought.Inc()
	m.OrdersPlaced.WithLabelValues("buy").Inc()
	m.OrdersPlaced.WithLabelValues("sell").Inc()

	require.Equal(float64(1), testutil.ToFloat64(m.TokensBought))
	require.Equal(float64(1), testutil.ToFloat64(m.OrdersPlaced.WithLabelValues("buy")))

	// Registering the same set twice collides
	_, err = New(reg)
	require.Error(err)
}
