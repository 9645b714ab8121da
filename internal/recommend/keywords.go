package recommend

import (
	"strings"
	"unicode"
)

// stopWords are dropped from keyword extraction. Body parts such as "back"
// and "neck" name conditions and are never stop words.
var stopWords = toSet(strings.Fields(`
a about above after again against all also am an and any are as at be because
been before being below between both but by can could did do does doing done
down during each either else even ever every few for from further get gets got
had has have having he her here hers herself him himself his how however i if
in into is it its itself just least less made make many may me might mine more
most much must my myself neither no nor not now of off often on once one only
or other others our ours ourselves out over own per perhaps please quite rather
really same say see seem seemed seems several she should show since so some
something sometimes still such than that the their theirs them themselves then
there these they this those though through thus to together too toward under
until up upon us very via was we well were what whatever when whenever where
whether which while who whoever whole whom whose why will with within without
would yet you your yours yourself yourselves feel feeling have suffer suffering
lot lots bit little`))

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Tokenize splits s into lowercase word tokens. Apostrophes stay inside a
// word; every other non letter or digit separates tokens.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// Keywords returns the alphabetic, non stop word tokens of s in order.
func Keywords(s string) []string {
	var out []string
	for _, tok := range Tokenize(s) {
		if !isAlpha(tok) {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
