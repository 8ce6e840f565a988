package domain

// TagCount is one entry of a tag frequency ranking
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// KeywordCount is one entry of a corpus keyword frequency ranking
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// YearCount groups documents by their year- tag
type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// Trends aggregates corpus-level statistics for the analytics view
type Trends struct {
	PopularTags    []TagCount     `json:"popular_tags"`
	YearlyStats    []YearCount    `json:"yearly_stats"`
	CommonKeywords []KeywordCount `json:"common_keywords"`
}

// TimelineBucket groups uploads by calendar month
type TimelineBucket struct {
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	Count     int   `json:"count"`
	TotalSize int64 `json:"total_size"`
}
