package profiling

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// DistributionAnalyzer computes summary statistics over hour values
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Summarize computes the descriptive statistics of data. The group key of
// the returned profile is left for the caller to fill.
func (da *DistributionAnalyzer) Summarize(data []float64) (HourProfile, error) {
	profile := HourProfile{Rows: len(data)}

	mean, err := stats.Mean(data)
	if err != nil {
		return profile, err
	}

	min, err := stats.Min(data)
	if err != nil {
		return profile, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return profile, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return profile, err
	}

	// Small groups cannot place a quartile; fall back to the extremes.
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		q25 = min
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		q75 = max
	}

	// Sample standard deviation; undefined below two values.
	stdDev := 0.0
	if len(data) > 1 {
		stdDev = stat.StdDev(data, nil)
	}

	profile.Mean = mean
	profile.Median = median
	profile.Min = min
	profile.Max = max
	profile.StdDev = stdDev
	profile.Q25 = q25
	profile.Q75 = q75
	profile.Outliers = detectOutliers(data, q25, q75)

	return profile, nil
}

// detectOutliers identifies outliers using IQR method
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}

	return outlierCount
}
