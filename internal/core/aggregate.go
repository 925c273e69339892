package core

// RawTotal is one entry of the contributor rollup document, keyed externally
// by slug.
type RawTotal struct {
	FullName          string  `json:"fullName" yaml:"fullName"`
	TotalAmount       float64 `json:"totalAmount" yaml:"totalAmount"`
	ContributionCount int     `json:"contributionCount" yaml:"contributionCount"`
}

// ContributorTotal is a rollup entry carrying its own key.
type ContributorTotal struct {
	Key               string  `json:"key" yaml:"key"`
	FullName          string  `json:"fullName" yaml:"fullName"`
	TotalAmount       float64 `json:"totalAmount" yaml:"totalAmount"`
	ContributionCount int     `json:"contributionCount" yaml:"contributionCount"`
}

// RecipientAggregate sums every record sent to one recipient name. Office and
// SampleLocation are the first non-empty values seen.
type RecipientAggregate struct {
	Name           string  `json:"name" yaml:"name"`
	Total          float64 `json:"total" yaml:"total"`
	Count          int     `json:"count" yaml:"count"`
	Office         string  `json:"office" yaml:"office"`
	SampleLocation string  `json:"sampleLocation" yaml:"sampleLocation"`
}

// Average returns the mean contribution, or 0 for an empty bucket.
func (a RecipientAggregate) Average() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Total / float64(a.Count)
}

// DateGroup holds the filings received under one raw date label.
type DateGroup struct {
	DateLabel   string   `json:"dateLabel" yaml:"dateLabel"`
	TotalAmount float64  `json:"totalAmount" yaml:"totalAmount"`
	Entries     []Record `json:"entries" yaml:"entries"`
}

// LocationAggregate counts filings per location label.
type LocationAggregate struct {
	Location string  `json:"location" yaml:"location"`
	Total    float64 `json:"total" yaml:"total"`
	Count    int     `json:"count" yaml:"count"`
}

// Summary holds dataset-wide figures.
type Summary struct {
	TotalAmount        float64 `json:"totalAmount" yaml:"totalAmount"`
	TotalContributions int     `json:"totalContributions" yaml:"totalContributions"`
	UniqueContributors int     `json:"uniqueContributors" yaml:"uniqueContributors"`
	UniqueRecipients   int     `json:"uniqueRecipients" yaml:"uniqueRecipients"`
}
