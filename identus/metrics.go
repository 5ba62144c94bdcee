/*
 * Copyright (C) 2025 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package identus

import (
	"time"

	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/prometheus/client_golang/prometheus"
)

var nonceRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: core.MetricsNamespace,
	Subsystem: "nonce",
	Name:      "requests_total",
	Help:      "Number of nonce requests sent to issuers, by outcome.",
}, []string{"outcome"})

var nonceRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: core.MetricsNamespace,
	Subsystem: "nonce",
	Name:      "request_duration_seconds",
	Help:      "Duration of nonce exchanges with issuers, including failed ones.",
	Buckets:   prometheus.DefBuckets,
})

func registerMetrics() error {
	return core.RegisterCollectors(nonceRequestsCounter, nonceRequestDuration)
}

func observeNonceRequest(start time.Time, err error) {
	nonceRequestsCounter.WithLabelValues(ErrorKind(err)).Inc()
	nonceRequestDuration.Observe(time.Since(start).Seconds())
}
