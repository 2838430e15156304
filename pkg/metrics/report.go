package metrics

import "math"

// Results holds the timed outcome of each calculator.
type Results struct {
	BusFactor      Timed[float64]
	Correctness    Timed[float64]
	License        Timed[float64]
	RampUp         Timed[float64]
	Responsiveness Timed[float64]
}

// Latency is the sum of the calculators' elapsed times.
func (r Results) Latency() float64 {
	return r.BusFactor.Seconds() + r.Correctness.Seconds() + r.License.Seconds() +
		r.RampUp.Seconds() + r.Responsiveness.Seconds()
}

// Report is the per-package output record. All numbers are rounded to two
// decimals; latencies are in seconds.
type Report struct {
	URL                         string  `json:"URL"`
	NetScore                    float64 `json:"NetScore"`
	NetScoreLatency             float64 `json:"NetScore_Latency"`
	BusFactor                   float64 `json:"BusFactor"`
	BusFactorLatency            float64 `json:"BusFactor_Latency"`
	Correctness                 float64 `json:"Correctness"`
	CorrectnessLatency          float64 `json:"Correctness_Latency"`
	License                     float64 `json:"License"`
	LicenseLatency              float64 `json:"License_Latency"`
	RampUp                      float64 `json:"RampUp"`
	RampUpLatency               float64 `json:"RampUp_Latency"`
	ResponsiveMaintainer        float64 `json:"ResponsiveMaintainer"`
	ResponsiveMaintainerLatency float64 `json:"ResponsiveMaintainer_Latency"`
}

// NewReport combines results with weights. The composite is computed from
// unrounded scores and rounded afterwards.
func NewReport(url string, r Results, w Weights) *Report {
	return &Report{
		URL:                         url,
		NetScore:                    round2(w.Combine(r)),
		NetScoreLatency:             round2(r.Latency()),
		BusFactor:                   round2(r.BusFactor.Result),
		BusFactorLatency:            round2(r.BusFactor.Seconds()),
		Correctness:                 round2(r.Correctness.Result),
		CorrectnessLatency:          round2(r.Correctness.Seconds()),
		License:                     round2(r.License.Result),
		LicenseLatency:              round2(r.License.Seconds()),
		RampUp:                      round2(r.RampUp.Result),
		RampUpLatency:               round2(r.RampUp.Seconds()),
		ResponsiveMaintainer:        round2(r.Responsiveness.Result),
		ResponsiveMaintainerLatency: round2(r.Responsiveness.Seconds()),
	}
}

// ZeroReport is the report for a package that could not be scored.
func ZeroReport(url string) *Report {
	return &Report{URL: url}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
