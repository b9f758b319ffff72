// Package content holds the whitepaper copy for each supported language.
// Callers pass a Language explicitly; there is no package-level selection.
package content

import (
	"strings"

	"dfaith/pkg/section"
	"dfaith/pkg/utils"
)

type Language string

const (
	German  Language = "de"
	English Language = "en"
	Polish  Language = "pl"
)

// Languages is the cycle order used by the language switch.
var Languages = []Language{German, English, Polish}

// ParseLanguage maps a code to a Language, falling back to German.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English
	case Polish:
		return Polish
	default:
		return German
	}
}

// Valid reports whether s names a supported language exactly.
func Valid(s string) bool {
	for _, l := range Languages {
		if string(l) == s {
			return true
		}
	}
	return false
}

// Next returns the language after l in Languages.
func (l Language) Next() Language {
	for i, v := range Languages {
		if v == l {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return German
}

func (l Language) Separators() utils.Separators {
	switch l {
	case English:
		return utils.English
	case Polish:
		return utils.Polish
	default:
		return utils.German
	}
}

// Labels are the fixed UI strings.
type Labels struct {
	Navigation   string
	OpenNav      string
	CloseNav     string
	ActiveUsers  string
	DFaithPrice  string
	DInvestPrice string
	Supply       string
	PriceHistory string
	LastUpdate   string
	Copied       string
	Throttled    string
	Refreshing   string
	Help         string
}

var labels = map[Language]Labels{
	German: {
		Navigation:   "Navigation",
		OpenNav:      "Navigation öffnen",
		CloseNav:     "Navigation schließen",
		ActiveUsers:  "Aktive Nutzer",
		DFaithPrice:  "D.FAITH Preis",
		DInvestPrice: "D.INVEST Preis",
		Supply:       "Gesamtangebot",
		PriceHistory: "D.FAITH Preisverlauf (EUR)",
		LastUpdate:   "Zuletzt aktualisiert",
		Copied:       "Link kopiert",
		Throttled:    "Bitte kurz warten",
		Refreshing:   "Aktualisiere",
		Help:         "↑/↓ scrollen • m menü • L sprache • r neu laden • c link kopieren • ? hilfe • q beenden",
	},
	English: {
		Navigation:   "Navigation",
		OpenNav:      "Open navigation",
		CloseNav:     "Close navigation",
		ActiveUsers:  "Active users",
		DFaithPrice:  "D.FAITH price",
		DInvestPrice: "D.INVEST price",
		Supply:       "Total supply",
		PriceHistory: "D.FAITH price history (EUR)",
		LastUpdate:   "Last updated",
		Copied:       "Link copied",
		Throttled:    "Please wait a moment",
		Refreshing:   "Refreshing",
		Help:         "↑/↓ scroll • m menu • L language • r refresh • c copy link • ? help • q quit",
	},
	Polish: {
		Navigation:   "Nawigacja",
		OpenNav:      "Otwórz nawigację",
		CloseNav:     "Zamknij nawigację",
		ActiveUsers:  "Aktywni użytkownicy",
		DFaithPrice:  "Cena D.FAITH",
		DInvestPrice: "Cena D.INVEST",
		Supply:       "Całkowita podaż",
		PriceHistory: "Historia ceny D.FAITH (EUR)",
		LastUpdate:   "Ostatnia aktualizacja",
		Copied:       "Link skopiowany",
		Throttled:    "Proszę chwilę poczekać",
		Refreshing:   "Odświeżanie",
		Help:         "↑/↓ przewijanie • m menu • L język • r odśwież • c kopiuj link • ? pomoc • q wyjście",
	},
}

func (l Language) Labels() Labels {
	if v, ok := labels[l]; ok {
		return v
	}
	return labels[German]
}

var titles = map[Language]map[section.ID]string{
	German: {
		section.Hero:       "D.FAITH Ökosystem",
		section.Problem:    "Das Problem",
		section.Solution:   "Die Lösung",
		section.Process:    "Prozess",
		section.Tokenomics: "Tokenomics",
		section.Webapp:     "Webapp",
		section.Team:       "Team",
		section.Roadmap:    "Roadmap",
	},
	English: {
		section.Hero:       "D.FAITH Ecosystem",
		section.Problem:    "The Problem",
		section.Solution:   "The Solution",
		section.Process:    "Process",
		section.Tokenomics: "Tokenomics",
		section.Webapp:     "Webapp",
		section.Team:       "Team",
		section.Roadmap:    "Roadmap",
	},
	Polish: {
		section.Hero:       "Ekosystem D.FAITH",
		section.Problem:    "Problem",
		section.Solution:   "Rozwiązanie",
		section.Process:    "Proces",
		section.Tokenomics: "Tokenomics",
		section.Webapp:     "Webapp",
		section.Team:       "Zespół",
		section.Roadmap:    "Mapa drogowa",
	},
}

// Title returns the heading of id, or the id itself when it has none.
func (l Language) Title(id section.ID) string {
	t, ok := titles[l]
	if !ok {
		t = titles[German]
	}
	if s, ok := t[id]; ok {
		return s
	}
	return string(id)
}
