// Package metrics counts coin parses and signer resolutions.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	Registry = prometheus.NewRegistry()

	CoinParsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "protostar", Name: "coin_parse_total", Help: "Coin strings parsed"},
		[]string{"outcome"},
	)
	SignerResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "protostar", Name: "signer_resolutions_total", Help: "Signing key resolutions by credential source"},
		[]string{"source", "outcome"},
	)
)

func init() {
	Registry.MustRegister(CoinParsesTotal, SignerResolutionsTotal)
}

// Outcome maps err to a label value.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

// ObserveCoinParse records one parse attempt.
func ObserveCoinParse(err error) {
	CoinParsesTotal.WithLabelValues(Outcome(err)).Inc()
}

// ObserveResolution records one signer resolution for the given credential source.
func ObserveResolution(source string, err error) {
	SignerResolutionsTotal.WithLabelValues(source, Outcome(err)).Inc()
}

// WriteTextfile dumps Registry in the text exposition format for a node-exporter textfile collector.
// A one-shot CLI has no scrape endpoint, so this replaces an HTTP listener.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
