package weather

// Pipeline turns one SampleSeries into the chart-ready AggregateBundle.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	fallback SyntheticFallback
}

// NewPipeline creates a Pipeline using fb for missing signals.
func NewPipeline(fb SyntheticFallback) *Pipeline {
	return &Pipeline{fallback: fb}
}

// Run builds every aggregate view for loc. Empty series and missing optional
// signals are valid input; only an out-of-order series is rejected.
func (p *Pipeline) Run(series SampleSeries, loc Location) (AggregateBundle, error) {
	if err := series.Validate(); err != nil {
		return AggregateBundle{}, err
	}

	ohlc := Resample(series)
	bundle := AggregateBundle{
		Location:   loc,
		OHLC:       ohlc,
		DailyHighs: DailyHighs(ohlc),
		Profile:    BuildProfile(series, SignalPrecipitation, p.fallback),
		Jitter:     BuildJitterSeries(series, SignalWindSpeed, loc.Seed(), p.fallback),
	}

	for _, sig := range []Signal{SignalPrecipitation, SignalWindSpeed} {
		if !series.Present(sig) {
			bundle.Synthetic = append(bundle.Synthetic, sig)
		}
	}

	return bundle, nil
}
