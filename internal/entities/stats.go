package entities

// GroupCount is one bar or slice of an aggregate chart.
type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// LibraryStats backs the library insights view: the total count plus
// the genre distribution and reading-progress breakdowns.
type LibraryStats struct {
	TotalBooks        int64        `json:"total_books"`
	BucketListSize    int64        `json:"bucket_list_size"`
	GenreDistribution []GroupCount `json:"genre_distribution"`
	StatusBreakdown   []GroupCount `json:"status_breakdown"`
}
