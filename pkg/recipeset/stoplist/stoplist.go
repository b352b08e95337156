package stoplist

import (
	"sort"
	"strings"
)

// Extras are recipe-specific additions to the English base list.
var Extras = []string{"f", "s", "etc"}

// english is the base English stop-word list.
var english = strings.Fields(`
a about above across after afterwards again against all almost alone along already also
although always am among amongst amount an and another any anyhow anyone anything anyway
anywhere are around as at back be became because become becomes becoming been before
beforehand behind being below beside besides between beyond both bottom but by call can
cannot ca could did do does doing done down due during each eight either eleven else
elsewhere empty enough even ever every everyone everything everywhere except few fifteen
fifty first five for former formerly forty four from front full further get give go had has
have he hence her here hereafter hereby herein hereupon hers herself him himself his how
however hundred i if in indeed into is it its itself just keep last latter latterly least
less made make many may me meanwhile might mine more moreover most mostly move much must my
myself name namely neither never nevertheless next nine no nobody none noone nor not nothing
now nowhere of off often on once one only onto or other others otherwise our ours ourselves
out over own part per perhaps please put quite rather re really regarding same say see seem
seemed seeming seems serious several she should show side since six sixty so some somehow
someone something sometime sometimes somewhere still such take ten than that the their them
themselves then thence there thereafter thereby therefore therein thereupon these they third
this those though three through throughout thru thus to together too top toward towards
twelve twenty two under unless until up upon us used using various very via was we well
were what whatever when whence whenever where whereafter whereas whereby wherein whereupon
wherever whether which while whither who whoever whole whom whose why will with within
without would yet you your yours yourself yourselves
`)

// English returns the base list plus Extras.
func English() []string {
	out := make([]string, 0, len(english)+len(Extras))
	out = append(out, english...)
	return append(out, Extras...)
}

// Manager holds the stop-word set used by the normalizer.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a manager from the given words, lowercased.
func NewManager(words []string) *Manager {
	m := &Manager{stops: make(map[string]struct{}, len(words))}
	for _, w := range words {
		m.Add(w)
	}
	return m
}

// IsStop checks if a token is a stopword.
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a word to the set.
func (m *Manager) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	m.stops[word] = struct{}{}
}

// Remove removes a word from the set.
func (m *Manager) Remove(word string) {
	delete(m.stops, strings.ToLower(word))
}

// All returns all stopwords, sorted.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Len returns the set size.
func (m *Manager) Len() int {
	return len(m.stops)
}
