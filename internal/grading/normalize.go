package grading

import (
	"math"
	"regexp"
	"strings"
)

// contractions maps common English contractions to their expanded forms.
// Expansion runs before punctuation stripping so the apostrophe removal
// cannot corrupt them ("don't" must become "do not", never "dont").
var contractions = map[string]string{
	"can't":     "cannot",
	"won't":     "will not",
	"shan't":    "shall not",
	"don't":     "do not",
	"doesn't":   "does not",
	"didn't":    "did not",
	"isn't":     "is not",
	"aren't":    "are not",
	"wasn't":    "was not",
	"weren't":   "were not",
	"hasn't":    "has not",
	"haven't":   "have not",
	"hadn't":    "had not",
	"wouldn't":  "would not",
	"couldn't":  "could not",
	"shouldn't": "should not",
	"mustn't":   "must not",
	"needn't":   "need not",
	"i'm":       "i am",
	"you're":    "you are",
	"he's":      "he is",
	"she's":     "she is",
	"it's":      "it is",
	"we're":     "we are",
	"they're":   "they are",
	"that's":    "that is",
	"there's":   "there is",
	"here's":    "here is",
	"what's":    "what is",
	"who's":     "who is",
	"where's":   "where is",
	"i've":      "i have",
	"you've":    "you have",
	"we've":     "we have",
	"they've":   "they have",
	"i'll":      "i will",
	"you'll":    "you will",
	"he'll":     "he will",
	"she'll":    "she will",
	"it'll":     "it will",
	"we'll":     "we will",
	"they'll":   "they will",
	"i'd":       "i would",
	"you'd":     "you would",
	"he'd":      "he would",
	"she'd":     "she would",
	"we'd":      "we would",
	"they'd":    "they would",
	"let's":     "let us",
}

var (
	contractionPattern = regexp.MustCompile(`[a-z]+'[a-z]+`)
	punctuationStrip   = strings.NewReplacer(
		".", "", ",", "", "!", "", "?", "", ";", "", ":", "",
		`"`, "", "'", "", "(", "", ")", "", "[", "", "]", "", "{", "", "}", "",
	)
	dashToSpace = strings.NewReplacer("-", " ", "–", " ", "—", " ")
)

// Normalize canonicalizes a string for loose answer comparison: trim and
// lower-case, expand contractions, strip punctuation, turn hyphens and dashes
// into spaces, collapse whitespace runs. Pure and total: an empty input
// yields an empty string. Two strings are the same answer iff their
// normalized forms are equal; no stemming or spelling tolerance is applied.
func Normalize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}

	s = contractionPattern.ReplaceAllStringFunc(s, func(token string) string {
		if expanded, ok := contractions[token]; ok {
			return expanded
		}
		return token
	})

	s = punctuationStrip.Replace(s)
	s = dashToSpace.Replace(s)

	return strings.Join(strings.Fields(s), " ")
}

// sameAnswer reports whether two raw strings are equal after normalization.
func sameAnswer(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// matchesAny reports whether the submission normalized-matches any of the
// accepted answers.
func matchesAny(submission string, accepted []string) bool {
	normalized := Normalize(submission)
	for _, answer := range accepted {
		if normalized == Normalize(answer) {
			return true
		}
	}
	return false
}

// proportionalScore applies the shared partial-credit formula
// round(correct/total*maxPoints) with half-up rounding.
func proportionalScore(correct, total, maxPoints int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * float64(maxPoints)))
}
