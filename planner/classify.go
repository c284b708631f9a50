// SPDX-License-Identifier: EPL-2.0

package planner

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Category is the broad kind of sound a file holds, guessed from its name.
type Category string

const (
	CategoryDrum          Category = "drum"
	CategoryBass          Category = "bass"
	CategoryLead          Category = "lead"
	CategoryLoop          Category = "loop"
	CategoryOneShot       Category = "one_shot"
	CategoryUncategorized Category = "uncategorized"
)

// Rule maps name patterns to a category. Rules are tried in order and the
// first match wins.
type Rule struct {
	Category Category
	Patterns []*regexp.Regexp
}

// Match reports whether any pattern matches one of names.
func (r Rule) Match(names ...string) bool {
	for _, re := range r.Patterns {
		for _, name := range names {
			if re.MatchString(name) {
				return true
			}
		}
	}
	return false
}

// DefaultRules are the built-in classification rules.
var DefaultRules = []Rule{
	{
		Category: CategoryDrum,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(kick|snare|hihat|clap|tom|cymbal|percussion|shaker|mallet|drum)\b`),
			regexp.MustCompile(`(?i)\b(ClosedHH|OpenHH|ClsdHH|Ride|Cowbell|Clave|Conga)\b`),
		},
	},
	{
		Category: CategoryBass,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(bass|bontempo|cohesion|dirac|error.?code|fallout|gogettue|ruebycon|scalar|shoveler|totalistic)\b`),
		},
	},
	{
		Category: CategoryLead,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(lead|anaerobic|beirut|cassata|circularism|delta.?curve|dweller|echnatone|ethifier|harmotron|schmoof)\b`),
		},
	},
	{
		Category: CategoryLoop,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(loop|construction)\b`),
			regexp.MustCompile(`(?i)\b(chord|drums|full|bass|kick|perc|hihats|shaker|snare|combo|sfx|glitch|ride|rim|stab|tom|synth|conga)\[\d+\]`),
		},
	},
	{
		Category: CategoryOneShot,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(ambience|analog.?fx|blip.?&.?blop|buzz|chord|glitch|impact|noise|sweep.?&.?swell|synth.?note|dive|rise|squelch|whoop|wow|bleep|resosynth)\b`),
		},
	},
}

// fallbackTerms are plain substrings tried on the lowercased relative path
// when no rule matched.
var fallbackTerms = []struct {
	category Category
	terms    []string
}{
	{CategoryDrum, []string{"drum", "kick", "snare", "hihat", "clap", "tom", "cymbal", "percussion", "shaker", "mallet"}},
	{CategoryBass, []string{"bass"}},
	{CategoryLead, []string{"lead"}},
	{CategoryLoop, []string{"loop", "construction"}},
	{CategoryOneShot, []string{"one shot", "one_shot", "one-shot", "oneshot", "ambience", "analog", "blip", "buzz", "chord", "glitch", "impact", "noise", "sweep", "synth"}},
}

// Classify returns the category of path. rel is the path relative to the
// scanned root, or the path itself when there is no root.
func Classify(rules []Rule, path, rel string) Category {
	name := filepath.Base(path)
	for _, r := range rules {
		if r.Match(name, rel) {
			return r.Category
		}
	}

	lower := strings.ToLower(filepath.ToSlash(rel))
	for _, fb := range fallbackTerms {
		for _, term := range fb.terms {
			if strings.Contains(lower, term) {
				return fb.category
			}
		}
	}
	return CategoryUncategorized
}
