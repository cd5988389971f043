package scottvm

import "strings"

// directionWords maps the single-letter shortcuts to their full dictionary
// headwords before lookup.
var directionWords = map[string]string{
	"n": "NORTH",
	"e": "EAST",
	"s": "SOUTH",
	"w": "WEST",
	"u": "UP",
	"d": "DOWN",
	"i": "INVENTORY",
}

// expandDirection applies the single-letter verb shortcut, matching
// case-insensitively.
func expandDirection(word string) string {
	if full, ok := directionWords[strings.ToLower(word)]; ok {
		return full
	}
	return word
}

// matchWord resolves a typed token against a dictionary (verbs or nouns),
// comparing the first wordLength characters case-insensitively. A match on
// a synonym entry (prefixed '*') resolves to the nearest preceding
// non-synonym index. No match returns -1.
func matchWord(dict []string, word string, wordLength int) int {
	word = truncateFold(word, wordLength)
	if word == "" {
		return -1
	}
	for i, entry := range dict {
		candidate := entry
		if strings.HasPrefix(candidate, "*") {
			candidate = candidate[1:]
		}
		if truncateFold(candidate, wordLength) == word {
			return resolveSynonym(dict, i)
		}
	}
	return -1
}

// resolveSynonym walks backward from i to the nearest entry that is not
// itself a synonym.
func resolveSynonym(dict []string, i int) int {
	for i >= 0 && strings.HasPrefix(dict[i], "*") {
		i--
	}
	if i < 0 {
		return 0
	}
	return i
}

func truncateFold(s string, n int) string {
	s = strings.ToUpper(s)
	if n > 0 && len(s) > n {
		s = s[:n]
	}
	return s
}

// ParsedCommand is the result of turning one line of typed input into a
// verb/noun pair ready for the VM, or a recognized reserved word.
type ParsedCommand struct {
	Verb    int
	Noun    int
	Restore bool
	NounRaw string
}

// ParseInput tokenizes one line of player input against gd's dictionaries,
// applying the direction-shortcut expansion and the noun-in-verb-position
// reinterpretation (a first word that matches a direction noun, 1-6, is
// treated as GO <noun>). Any other first word must match a verb, or the
// line fails to parse.
func ParseInput(gd *GameData, line string) (ParsedCommand, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParsedCommand{}, false
	}
	if strings.EqualFold(fields[0], "restore") {
		return ParsedCommand{Restore: true}, true
	}

	first := expandDirection(fields[0])

	if noun := matchWord(gd.Nouns, first, gd.WordLength); noun >= 1 && noun <= 6 {
		return ParsedCommand{Verb: 1, Noun: noun, NounRaw: first}, true
	}

	verb := matchWord(gd.Verbs, first, gd.WordLength)
	if verb < 0 {
		return ParsedCommand{}, false
	}

	noun := 0
	nounRaw := ""
	if len(fields) > 1 {
		nounRaw = fields[1]
		noun = matchWord(gd.Nouns, fields[1], gd.WordLength)
		if noun < 0 {
			noun = 0
		}
	}

	return ParsedCommand{Verb: verb, Noun: noun, NounRaw: nounRaw}, true
}
