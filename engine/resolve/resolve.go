// Package resolve maps names typed by the player to items and monsters.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/dungeoncore/types"
)

// AmbiguityError indicates several differently named things matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("Which %s? (%s)", e.Name, names)
}

// NotFoundError indicates nothing matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("You don't see any '%s' here.", e.Name)
}

// Item finds the item called name. An exact (case-insensitive) name match
// wins; otherwise the name must be a substring of exactly one item name.
// Identical names are interchangeable and resolve to the first.
func Item(items []types.Item, name string) (types.Item, error) {
	return match(items, func(it types.Item) string { return it.Name }, name)
}

// Monster finds the monster called name, by the same rules as Item. The
// archetype also matches, so "goblin" finds "Fierce Goblin".
func Monster(monsters []types.Monster, name string) (types.Monster, error) {
	m, err := match(monsters, func(m types.Monster) string { return m.Name }, name)
	if _, notFound := err.(*NotFoundError); notFound {
		return match(monsters, func(m types.Monster) string { return m.Archetype }, name)
	}
	return m, err
}

func match[T any](cands []T, nameOf func(T) string, name string) (T, error) {
	var zero T
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return zero, &NotFoundError{Name: name}
	}

	for _, c := range cands {
		if strings.ToLower(nameOf(c)) == query {
			return c, nil
		}
	}

	var (
		first T
		found bool
		names []string
	)
	for _, c := range cands {
		n := nameOf(c)
		if !strings.Contains(strings.ToLower(n), query) {
			continue
		}
		if !found {
			first, found = c, true
		}
		if !containsStr(names, n) {
			names = append(names, n)
		}
	}

	switch {
	case !found:
		return zero, &NotFoundError{Name: name}
	case len(names) > 1:
		return zero, &AmbiguityError{Name: name, Candidates: names}
	}
	return first, nil
}

func containsStr(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
