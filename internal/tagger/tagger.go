// Package tagger derives organisational tags from a document's original
// filename: exactly one year tag, program-area keywords and donor names.
package tagger

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearPattern = regexp.MustCompile(`20\d{2}`)

// programKeywords are tagged verbatim when they appear in the filename.
var programKeywords = []string{
	"education", "curriculum", "school", "students", "teachers",
	"literacy", "training", "skills", "e-learning", "vocational",
	"higher-education", "health", "healthcare", "public-health",
	"malaria", "hiv", "vaccine", "nutrition", "maternal", "child",
	"disease", "mental-health", "clinic", "hospital", "medicine",
	"pandemic", "research", "study", "clinical", "trial", "experiment",
	"innovation", "technology", "ai", "data", "science", "development",
	"startup", "entrepreneurship", "policy", "legislation", "regulation",
	"governance", "law", "compliance", "strategy", "advocacy", "program",
	"grant", "funding", "investment", "budget", "finance", "philanthropy",
	"awards", "scholarships", "environment", "climate", "energy",
	"sustainability", "conservation", "water", "agriculture", "forestry",
	"renewable", "green", "community", "social", "youth", "women",
	"empowerment", "inclusion", "equality", "volunteer", "ngo", "nonprofit",
}

// donorKeywords become donor-<name> tags.
var donorKeywords = []string{
	"gates", "foundation", "who", "worldbank", "unicef", "undp",
	"usaid", "dfid", "nih", "wellcome", "rockefeller", "ford",
}

// Generate produces tags from the original filename. There is always
// exactly one year-NNNN tag: the first year found in the name, or the
// current year when none is present. Keyword and donor matches are
// substring matches over the lowercased name, deduplicated.
func Generate(filename string) []string {
	lower := strings.ToLower(filename)

	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	if year := yearPattern.FindString(lower); year != "" {
		add("year-" + year)
	} else {
		add("year-" + strconv.Itoa(time.Now().Year()))
	}

	for _, kw := range programKeywords {
		if strings.Contains(lower, kw) {
			add(kw)
		}
	}

	for _, donor := range donorKeywords {
		if strings.Contains(lower, donor) {
			add("donor-" + donor)
		}
	}

	return tags
}
