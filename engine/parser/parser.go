// Package parser converts command strings into structured commands.
// No NLP: shorthand expansion, alias lookup and an argument tail.
package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nathoo/dungeoncore/types"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	EmptyInput ErrorKind = iota + 1
	Unmatched
)

// ParseError is returned for input that does not name a command.
type ParseError struct {
	Kind  ErrorKind
	Input string
}

func (e *ParseError) Error() string {
	if e.Kind == EmptyInput {
		return "Please enter a command."
	}
	return fmt.Sprintf("I don't understand %q. Type 'help' for a list of commands.", e.Input)
}

var directionExpansions = map[string]string{
	"n": "north",
	"s": "south",
	"e": "east",
	"w": "west",
}

var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
}

// Two-word verbs; the second word is consumed.
var phrases = map[[2]string]string{
	{"pick", "up"}:  "take",
	{"look", "at"}:  "examine",
	{"put", "down"}: "drop",
	{"take", "off"}: "unequip",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse matches input against reg. The argument tail keeps its internal
// spacing ("health  potion" stays one argument) minus a leading article.
func Parse(input string, reg *Registry) (types.Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return types.Command{}, &ParseError{Kind: EmptyInput, Input: input}
	}

	verb, args := splitFirst(strings.ToLower(raw))

	if args == "" {
		if dir, ok := directionExpansions[verb]; ok {
			verb, args = "go", dir
		} else if directionNames[verb] {
			verb, args = "go", verb
		}
	}

	if next, rest := splitFirst(args); next != "" {
		if canonical, ok := phrases[[2]string{verb, next}]; ok {
			verb, args = canonical, rest
		}
	}

	def, ok := reg.Lookup(verb)
	if !ok {
		return types.Command{}, &ParseError{Kind: Unmatched, Input: raw}
	}

	args = stripArticle(args)
	if def.Name == "go" {
		if dir, ok := directionExpansions[args]; ok {
			args = dir
		}
	}

	return types.Command{
		Verb: def.Name,
		Args: args,
		Def:  def,
		Raw:  raw,
	}, nil
}

// splitFirst splits off the first word. rest keeps its inner spacing.
func splitFirst(s string) (first, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func stripArticle(args string) string {
	first, rest := splitFirst(args)
	if articles[first] && rest != "" {
		return rest
	}
	return args
}
