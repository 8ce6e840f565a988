// Package intent classifies chat messages into corpus query intents and
// extracts their parameters.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

var (
	pagePattern     = regexp.MustCompile(`page\s+(\d+)\s+of\s+(.+)`)
	sizePattern     = regexp.MustCompile(`(larger|bigger|smaller)\s+than\s+(\d+)\s*(kb|mb|gb)`)
	filetypePattern = regexp.MustCompile(`\b(pdf|docx|doc|txt|rtf|csv|xlsx)\b`)
)

// Classify analyses a chat message and returns its intent with any
// extracted parameters. Classification is keyword based; the first
// matching rule wins.
func Classify(message string) domain.QueryAnalysis {
	analysis := domain.QueryAnalysis{
		Intent:        domain.IntentGeneral,
		OriginalQuery: message,
	}
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return analysis
	}

	if m := pagePattern.FindStringSubmatch(lower); m != nil {
		analysis.Intent = domain.IntentPage
		analysis.Parameters.Page, _ = strconv.Atoi(m[1])
		analysis.Parameters.Document = strings.TrimSpace(m[2])
		return analysis
	}

	if m := sizePattern.FindStringSubmatch(lower); m != nil {
		analysis.Intent = domain.IntentFiletype
		if m[1] == "smaller" {
			analysis.Parameters.SizeComparison = "smaller"
		} else {
			analysis.Parameters.SizeComparison = "larger"
		}
		n, _ := strconv.ParseInt(m[2], 10, 64)
		analysis.Parameters.SizeValue = n
		analysis.Parameters.SizeUnit = m[3]
		return analysis
	}

	if strings.Contains(lower, "how many") || strings.Contains(lower, "count") {
		analysis.Intent = domain.IntentCount
		analysis.Parameters.Filetype = findFiletype(lower)
		return analysis
	}

	if strings.Contains(lower, "summarize") || strings.Contains(lower, "summarise") ||
		strings.Contains(lower, "summary of") {
		analysis.Intent = domain.IntentSummarize
		analysis.Parameters.Document = trailingSubject(lower,
			"summarize", "summarise", "summary of")
		return analysis
	}

	if strings.Contains(lower, "tagged") || strings.HasPrefix(lower, "tags") ||
		strings.Contains(lower, "with tag") {
		analysis.Intent = domain.IntentTag
		analysis.Parameters.Document = trailingSubject(lower, "tagged with", "tagged", "with tag", "tags")
		return analysis
	}

	if ft := findFiletype(lower); ft != "" &&
		(strings.Contains(lower, "files") || strings.Contains(lower, "documents") ||
			strings.Contains(lower, "show")) {
		analysis.Intent = domain.IntentFiletype
		analysis.Parameters.Filetype = ft
		return analysis
	}

	if strings.HasPrefix(lower, "show") || strings.HasPrefix(lower, "open") ||
		strings.HasPrefix(lower, "get") {
		analysis.Intent = domain.IntentRetrieve
		analysis.Parameters.Document = trailingSubject(lower, "show me", "show", "open", "get")
		return analysis
	}

	if strings.Contains(lower, "find") || strings.Contains(lower, "search") ||
		strings.Contains(lower, "about") || strings.Contains(lower, "related to") {
		analysis.Intent = domain.IntentSearch
		analysis.Parameters.Document = trailingSubject(lower,
			"about", "related to", "search for", "find", "search")
		return analysis
	}

	return analysis
}

func findFiletype(lower string) string {
	if m := filetypePattern.FindStringSubmatch(lower); m != nil {
		return m[1]
	}
	return ""
}

// trailingSubject strips the first matching prefix keyword and returns
// the remainder as the query subject.
func trailingSubject(lower string, keywords ...string) string {
	for _, kw := range keywords {
		if idx := strings.Index(lower, kw); idx >= 0 {
			subject := strings.TrimSpace(lower[idx+len(kw):])
			subject = strings.Trim(subject, "?.!\"'")
			return strings.TrimSpace(subject)
		}
	}
	return ""
}
