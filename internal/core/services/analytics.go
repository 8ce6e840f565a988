package services

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
)

const (
	popularTagLimit = 10
	keywordLimit    = 20
)

var wordPattern = regexp.MustCompile(`[a-z]{4,}`)

// stopwords are excluded from the common-keyword ranking
var stopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"will": true, "been": true, "were": true, "their": true, "which": true,
	"would": true, "there": true, "about": true, "other": true, "these": true,
	"than": true, "them": true, "then": true, "when": true, "also": true,
	"into": true, "such": true, "more": true, "some": true, "over": true,
	"shall": true, "must": true, "each": true, "where": true, "during": true,
}

// Ensure analyticsService implements AnalyticsService
var _ driving.AnalyticsService = (*analyticsService)(nil)

// analyticsService implements the AnalyticsService interface
type analyticsService struct {
	documentStore driven.DocumentStore
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(documentStore driven.DocumentStore) driving.AnalyticsService {
	return &analyticsService{documentStore: documentStore}
}

// Trends returns popular tags, yearly stats and common keywords
func (s *analyticsService) Trends(ctx context.Context) (*domain.Trends, error) {
	docs, err := s.documentStore.Search(ctx, domain.SearchFilter{})
	if err != nil {
		return nil, err
	}

	tagCounts := make(map[string]int)
	yearCounts := make(map[string]int)
	keywordCounts := make(map[string]int)

	for _, doc := range docs {
		for _, tag := range doc.Tags {
			tagCounts[tag]++
			if strings.HasPrefix(tag, "year-") {
				yearCounts[strings.TrimPrefix(tag, "year-")]++
			}
		}
		for _, word := range wordPattern.FindAllString(strings.ToLower(doc.ExtractedText), -1) {
			if !stopwords[word] {
				keywordCounts[word]++
			}
		}
	}

	return &domain.Trends{
		PopularTags:    topTags(tagCounts, popularTagLimit),
		YearlyStats:    yearStats(yearCounts),
		CommonKeywords: topKeywords(keywordCounts, keywordLimit),
	}, nil
}

// Timeline groups uploads by calendar month
func (s *analyticsService) Timeline(ctx context.Context) ([]domain.TimelineBucket, error) {
	return s.documentStore.Timeline(ctx)
}

func topTags(counts map[string]int, limit int) []domain.TagCount {
	out := make([]domain.TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, domain.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func yearStats(counts map[string]int) []domain.YearCount {
	out := make([]domain.YearCount, 0, len(counts))
	for year, count := range counts {
		out = append(out, domain.YearCount{Year: year, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year < out[j].Year
	})
	return out
}

func topKeywords(counts map[string]int, limit int) []domain.KeywordCount {
	out := make([]domain.KeywordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, domain.KeywordCount{Keyword: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Keyword < out[j].Keyword
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
