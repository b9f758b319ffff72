package content

import "dfaith/pkg/section"

var bodies = map[Language]map[section.ID][]string{
	German: {
		section.Hero: {
			"Ein Ökosystem, das Fans für echtes Engagement belohnt und gleichzeitig Kapital für unabhängige Musik schafft.",
		},
		section.Problem: {
			"Zentrale Herausforderungen für unabhängige Künstler.",
			"Geringe Reichweite: Qualitätsvoller Content erreicht nicht genug Menschen organisch.",
			"Teure Werbung: Paid Ads kosten viel, bringen aber nicht nachhaltige Fans.",
			"Fehlendes Kapital: Keine Mittel für Musikproduktion und professionelle Videos.",
			"Schwaches Engagement: Fan-Interaktionen bringen keinen direkten Mehrwert.",
		},
		section.Solution: {
			"Ein intelligentes Dual-Token-System, das den Teufelskreis durchbricht und eine Win-Win-Situation für Künstler und Fans schafft.",
			"D.FAITH ist der Fan-Belohnungstoken. D.INVEST ist der Investitions-Token und entsperrt gesperrte D.FAITH Token durch Staking.",
		},
		section.Process: {
			"Fans interagieren mit Inhalten, sammeln Erfahrungspunkte und erhalten D.FAITH als Belohnung.",
			"Investoren kaufen D.INVEST, finanzieren damit Musikproduktion und staken für D.FAITH.",
		},
		section.Tokenomics: {
			"D.INVEST hat einen festen Preis von 5,00 €. Der Preis von D.FAITH entsteht am Markt.",
			"Das Angebot von D.FAITH ist begrenzt; Wertsteigerung entsteht durch Verknappung.",
		},
		section.Webapp: {
			"Die Webapp bündelt Wallet, Staking, Shop und Leaderboard an einem Ort.",
		},
		section.Team: {
			"Dawid Faith, Gründer und Künstler, zusammen mit einem kleinen Team aus Entwicklung und Marketing.",
		},
		section.Roadmap: {
			"Phase 1: Token-Launch und Webapp.",
			"Phase 2: Staking und Shop.",
			"Phase 3: Ausbau der Community und neue Musikproduktionen.",
		},
	},
	English: {
		section.Hero: {
			"An ecosystem that rewards fans for real engagement while raising capital for independent music.",
		},
		section.Problem: {
			"Core challenges for independent artists.",
			"Low reach: quality content doesn't reach enough people organically.",
			"Expensive advertising: paid ads cost a lot but don't bring sustainable fans.",
			"Missing capital: no funds for music production and professional videos.",
			"Weak engagement: fan interactions don't bring direct added value.",
		},
		section.Solution: {
			"An intelligent dual-token system that breaks the vicious cycle and creates a win-win situation for artists and fans.",
			"D.FAITH is the fan reward token. D.INVEST is the investment token and unlocks locked D.FAITH through staking.",
		},
		section.Process: {
			"Fans interact with content, collect experience points and receive D.FAITH as a reward.",
			"Investors buy D.INVEST, funding music production, and stake it for D.FAITH.",
		},
		section.Tokenomics: {
			"D.INVEST has a fixed price of €5.00. The D.FAITH price is set by the market.",
			"D.FAITH supply is capped; scarcity drives its value.",
		},
		section.Webapp: {
			"The webapp brings wallet, staking, shop and leaderboard together in one place.",
		},
		section.Team: {
			"Dawid Faith, founder and artist, with a small development and marketing team.",
		},
		section.Roadmap: {
			"Phase 1: token launch and webapp.",
			"Phase 2: staking and shop.",
			"Phase 3: community growth and new music productions.",
		},
	},
	Polish: {
		section.Hero: {
			"Ekosystem, który nagradza fanów za prawdziwe zaangażowanie i jednocześnie zbiera kapitał na niezależną muzykę.",
		},
		section.Problem: {
			"Główne wyzwania dla niezależnych artystów.",
			"Mały zasięg: jakościowe treści nie docierają organicznie do wystarczającej liczby osób.",
			"Droga reklama: płatne reklamy kosztują dużo, ale nie przynoszą trwałych fanów.",
			"Brak kapitału: brak środków na produkcję muzyczną i profesjonalne wideo.",
			"Słabe zaangażowanie: interakcje z fanami nie przynoszą bezpośredniej wartości dodanej.",
		},
		section.Solution: {
			"Inteligentny system podwójnych tokenów, który przerywa błędne koło i tworzy sytuację korzystną dla artystów i fanów.",
			"D.FAITH to token nagrody dla fanów. D.INVEST to token inwestycyjny, który przez staking odblokowuje zablokowane D.FAITH.",
		},
		section.Process: {
			"Fani wchodzą w interakcję z treściami, zbierają punkty doświadczenia i otrzymują D.FAITH jako nagrodę.",
			"Inwestorzy kupują D.INVEST, finansując produkcję muzyczną, i stakują go dla D.FAITH.",
		},
		section.Tokenomics: {
			"D.INVEST ma stałą cenę 5,00 €. Cenę D.FAITH ustala rynek.",
			"Podaż D.FAITH jest ograniczona; wartość rośnie dzięki niedoborowi.",
		},
		section.Webapp: {
			"Aplikacja łączy portfel, staking, sklep i ranking w jednym miejscu.",
		},
		section.Team: {
			"Dawid Faith, założyciel i artysta, z małym zespołem programistów i marketingowców.",
		},
		section.Roadmap: {
			"Faza 1: start tokena i aplikacji.",
			"Faza 2: staking i sklep.",
			"Faza 3: rozwój społeczności i nowe produkcje muzyczne.",
		},
	},
}

// Body returns the paragraphs of id in l, falling back to German.
func (l Language) Body(id section.ID) []string {
	b, ok := bodies[l]
	if !ok {
		b = bodies[German]
	}
	return b[id]
}
