package guardrails

import (
	"regexp"
	"strings"
)

// Match describes which pattern family rejected a text.
type Match struct {
	Category Category
	Reason   string
}

// family is one ordered entry in the filter: a category plus a predicate.
type family struct {
	category Category
	reason   string
	match    func(f *ContentFilter, text, lower string) bool
}

// ContentFilter is the rule-based classifier for disallowed content. It is a
// pure function of the text: an ordered list of pattern families evaluated in
// a fixed sequence, first match wins.
type ContentFilter struct {
	families []family

	inappropriate []*regexp.Regexp
	personalInfo  []*regexp.Regexp
	cheating      []string
	educational   []string
	suspicious    []string

	// Off-topic heuristic knobs, tunable per deployment.
	offTopicMinWords   int
	minSuspiciousHits  int
	minEducationalHits int
}

// FilterOption customises the content filter heuristics.
type FilterOption func(*ContentFilter)

// WithOffTopicMinWords sets the minimum word count before the off-topic
// heuristic applies.
func WithOffTopicMinWords(n int) FilterOption {
	return func(f *ContentFilter) {
		if n > 0 {
			f.offTopicMinWords = n
		}
	}
}

// WithSuspiciousThreshold sets how many leisure-topic hits flag a text.
func WithSuspiciousThreshold(n int) FilterOption {
	return func(f *ContentFilter) {
		if n > 0 {
			f.minSuspiciousHits = n
		}
	}
}

// WithEducationalThreshold sets how many study-topic hits clear a text.
func WithEducationalThreshold(n int) FilterOption {
	return func(f *ContentFilter) {
		if n > 0 {
			f.minEducationalHits = n
		}
	}
}

// NewContentFilter builds the default pattern families.
func NewContentFilter(opts ...FilterOption) *ContentFilter {
	f := &ContentFilter{
		inappropriate: compileAll(
			`\b(sex|sexual|porn|xxx|nsfw)\b`,
			`\b(drug|drugs|cocaine|heroin|marijuana|weed)\b`,
			`\b(violence|violent|kill|murder|rape|assault)\b`,
			`\b(hate|hateful|racist|racism|nazi)\b`,
			`\b(hack|hacking|exploit|malware|virus)\b`,
			`\b(suicide|self.?harm|cutting)\b`,
			`\b(alcohol|beer|liquor|drunk)\b`,
			`\b(gambling|casino|lottery)\b`,
			`\b(weapon|gun|bomb|explosive)\b`,
		),
		personalInfo: compileAll(
			`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`,                         // phone numbers
			`\b\d{3}[-.]?\d{2}[-.]?\d{4}\b`,                         // SSN-like digit groups
			`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,    // email addresses
			`\b\d{1,5}\s+[A-Za-z]+\s+(street|st|avenue|ave|road|rd|lane|ln|drive|dr)\b`, // street addresses
			`\b(password|login|username|credential)\b`,              // credential keywords
		),
		cheating: []string{
			"how to cheat", "cheat on", "hack exam", "hack the exam",
			"steal answers", "leak the test", "exam answers for",
		},
		educational: []string{
			"study", "learn", "understand", "explain", "chapter", "lesson",
			"homework", "assignment", "concept", "theory", "practice",
			"example", "question", "answer", "review", "summary",
		},
		suspicious: []string{
			"party", "game", "movie", "music", "sport", "celebrity",
		},
		offTopicMinWords:   10,
		minSuspiciousHits:  2,
		minEducationalHits: 2,
	}
	for _, opt := range opts {
		opt(f)
	}

	// Evaluation order determines the rejection category: a text that trips
	// several families reports the first.
	f.families = []family{
		{
			category: CategoryInappropriate,
			reason:   "Contains inappropriate content",
			match: func(f *ContentFilter, text, lower string) bool {
				return anyMatch(f.inappropriate, lower)
			},
		},
		{
			category: CategoryPersonalInfo,
			reason:   "Contains personal information",
			match: func(f *ContentFilter, text, lower string) bool {
				return anyMatch(f.personalInfo, text)
			},
		},
		{
			category: CategoryCheating,
			reason:   "Academic dishonesty attempt detected",
			match: func(f *ContentFilter, text, lower string) bool {
				for _, phrase := range f.cheating {
					if strings.Contains(lower, phrase) {
						return true
					}
				}
				return false
			},
		},
		{
			category: CategoryOffTopic,
			reason:   "Query appears off-topic for a study assistant",
			match:    (*ContentFilter).offTopic,
		},
	}
	return f
}

// Check evaluates the text against every family in order and reports the
// first match, if any.
func (f *ContentFilter) Check(text string) (Match, bool) {
	lower := strings.ToLower(text)
	for _, fam := range f.families {
		if fam.match(f, text, lower) {
			return Match{Category: fam.category, Reason: fam.reason}, true
		}
	}
	return Match{}, false
}

// offTopic flags longer texts that lean towards leisure topics while showing
// little study vocabulary.
func (f *ContentFilter) offTopic(text, lower string) bool {
	if len(strings.Fields(text)) <= f.offTopicMinWords {
		return false
	}
	suspicious := countHits(f.suspicious, lower)
	educational := countHits(f.educational, lower)
	return suspicious >= f.minSuspiciousHits && educational < f.minEducationalHits
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile("(?i)" + p)
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func countHits(terms []string, lower string) int {
	hits := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return hits
}
