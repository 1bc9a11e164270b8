package profiling

import (
	"sort"

	"drafthours/domain/estimate"
)

// GroupKey identifies one profiled slice of the reference table
type GroupKey struct {
	DocumentType    estimate.DocumentType    `json:"document_type"`
	ComplexityClass estimate.ComplexityClass `json:"complexity_class"`
}

// HourProfile summarizes the per-unit hours of one group
type HourProfile struct {
	GroupKey
	Rows     int     `json:"rows"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	StdDev   float64 `json:"std_dev"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Outliers int     `json:"outliers"`
}

// TableSummary is the profile of a whole reference table
type TableSummary struct {
	Rows          int                           `json:"rows"`
	DocumentTypes map[estimate.DocumentType]int `json:"document_types"`
	Tools         map[estimate.Tool]int         `json:"tools"`
	Ambiguous     []estimate.LookupKey          `json:"ambiguous_keys"`
	Profiles      []HourProfile                 `json:"profiles"`
}

// TableProfiler profiles reference tables
type TableProfiler struct {
	analyzer *DistributionAnalyzer
}

// NewTableProfiler creates a new table profiler
func NewTableProfiler() *TableProfiler {
	return &TableProfiler{analyzer: NewDistributionAnalyzer()}
}

// ProfileTable groups rows by document type and complexity class and
// summarizes the hours of each group. Groups are ordered by document type
// then class.
func (tp *TableProfiler) ProfileTable(table *estimate.Table) (*TableSummary, error) {
	rows := table.Rows()
	summary := &TableSummary{
		Rows:          len(rows),
		DocumentTypes: make(map[estimate.DocumentType]int),
		Tools:         make(map[estimate.Tool]int),
		Ambiguous:     table.DuplicateKeys(),
	}

	groups := make(map[GroupKey][]float64)
	for _, r := range rows {
		summary.DocumentTypes[r.DocumentType]++
		summary.Tools[r.Tool]++
		key := GroupKey{DocumentType: r.DocumentType, ComplexityClass: r.ComplexityClass}
		groups[key] = append(groups[key], r.TotalHours)
	}

	keys := make([]GroupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DocumentType != keys[j].DocumentType {
			return keys[i].DocumentType < keys[j].DocumentType
		}
		return keys[i].ComplexityClass < keys[j].ComplexityClass
	})

	for _, k := range keys {
		profile, err := tp.analyzer.Summarize(groups[k])
		if err != nil {
			return nil, err
		}
		profile.GroupKey = k
		summary.Profiles = append(summary.Profiles, profile)
	}
	return summary, nil
}
