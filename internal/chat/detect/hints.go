package detect

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var regionsYAML []byte

type regionTokens struct {
	NorthAmerica  []string `yaml:"north_america"`
	International []string `yaml:"international"`
}

// Compiled token sets. Single words go into a set and match whole words;
// multi-word phrases match as substrings.
var (
	naWords     map[string]struct{}
	naPhrases   []string
	intlWords   map[string]struct{}
	intlPhrases []string
)

func init() {
	var tokens regionTokens
	if err := yaml.Unmarshal(regionsYAML, &tokens); err != nil {
		panic("detect: invalid regions.yaml: " + err.Error())
	}
	naWords, naPhrases = compile(tokens.NorthAmerica)
	intlWords, intlPhrases = compile(tokens.International)
}

func compile(tokens []string) (map[string]struct{}, []string) {
	words := make(map[string]struct{})
	var phrases []string
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if strings.ContainsAny(token, " .") {
			phrases = append(phrases, token)
		} else {
			words[token] = struct{}{}
		}
	}
	return words, phrases
}

// InternationalHint decides whether assuming the default North American
// calling region for a bare 10-digit number would likely be wrong.
//
// Explicit NA markers win outright. The heuristic is biased toward false:
// missing an international visitor is cheaper than interrupting a domestic
// one with a country-code question.
func InternationalHint(transcript string) bool {
	text := strings.ToLower(transcript)
	words := wordSet(text)

	if matches(text, words, naWords, naPhrases) {
		return false
	}
	return matches(text, words, intlWords, intlPhrases)
}

func matches(text string, words map[string]struct{}, tokenWords map[string]struct{}, tokenPhrases []string) bool {
	for w := range tokenWords {
		if _, ok := words[w]; ok {
			return true
		}
	}
	for _, phrase := range tokenPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func wordSet(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		words[w] = struct{}{}
	}
	return words
}
