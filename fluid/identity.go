package fluid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultSynonyms maps user spellings to canonical fluid names.
var DefaultSynonyms = map[string]string{
	"h2o":   "water",
	"water": "water",
}

// Identity resolves user-supplied fluid names to canonical names.
// Every alias maps to exactly one canonical name, and the canonical names are
// exactly the distinct fluids of the table.
type Identity struct {
	synonyms  map[string]string // normalized alias -> canonical
	canonical map[string]string // lowercase canonical -> canonical
	names     []string          // sorted canonical names
}

// NewIdentity builds the alias table for the given canonical fluids.
// Synonyms whose target is not one of the fluids are dropped with a warning.
// Two fluids that differ only by case are rejected, since a case-insensitive
// alias could not map to exactly one of them.
func NewIdentity(fluids []string, synonyms map[string]string) (*Identity, error) {
	id := &Identity{
		synonyms:  make(map[string]string, len(synonyms)),
		canonical: make(map[string]string, len(fluids)),
	}
	for _, f := range fluids {
		key := normalizeName(f)
		if prev, dup := id.canonical[key]; dup && prev != f {
			return nil, fmt.Errorf("%w: fluids %q and %q differ only by case", ErrMalformedTable, prev, f)
		}
		id.canonical[key] = f
		id.names = append(id.names, f)
	}
	sort.Strings(id.names)

	aliases := make([]string, 0, len(synonyms))
	for a := range synonyms {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	for _, a := range aliases {
		target, ok := id.canonical[normalizeName(synonyms[a])]
		if !ok {
			logrus.Warnf("Dropping synonym %q -> %q: fluid not present in table", a, synonyms[a])
			continue
		}
		key := normalizeName(a)
		if shadowed, ok := id.canonical[key]; ok && shadowed != target {
			logrus.Warnf("Synonym %q -> %q shadows fluid %q, which can no longer be queried by name", a, target, shadowed)
		}
		if prev, dup := id.synonyms[key]; dup && prev != target {
			return nil, fmt.Errorf("synonym %q maps to both %q and %q", a, prev, target)
		}
		id.synonyms[key] = target
	}
	return id, nil
}

// Resolve maps name to its canonical fluid. Synonyms are consulted before
// canonical names; matching is case-insensitive after trimming whitespace.
func (id *Identity) Resolve(name string) (string, error) {
	key := normalizeName(name)
	if c, ok := id.synonyms[key]; ok {
		return c, nil
	}
	if c, ok := id.canonical[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownFluid, name, id.names)
}

// Names returns the sorted canonical fluid names.
func (id *Identity) Names() []string {
	return append([]string(nil), id.names...)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
