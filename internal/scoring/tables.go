// Package scoring converts a document plus its extracted entities into a
// 0-100 intelligence score with a confidence value and a priority class.
//
// Every scorer takes its lookup tables by value at construction time. The
// tables are plain data loaded once at startup and never mutated during
// scoring, so concurrent batches can share scorers without locks and tests
// can substitute alternate tables freely.
package scoring

import "fmt"

// Tier weights for keyword scoring.
const (
	TierCriticalWeight = 100.0
	TierHighWeight     = 80.0
	TierMediumWeight   = 60.0
	TierLowWeight      = 40.0
)

// KeywordTiers holds the four weighted keyword buckets.
type KeywordTiers struct {
	Critical []string `yaml:"critical" json:"critical"`
	High     []string `yaml:"high" json:"high"`
	Medium   []string `yaml:"medium" json:"medium"`
	Low      []string `yaml:"low" json:"low"`
}

// TensionPair is a known pair of countries with elevated geopolitical weight.
type TensionPair struct {
	A      string  `yaml:"a" json:"a"`
	B      string  `yaml:"b" json:"b"`
	Weight float64 `yaml:"weight" json:"weight"` // 0-100 context importance
}

// ThreatCategory pairs a keyword set with an escalation weight.
type ThreatCategory struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Weight   float64  `yaml:"weight" json:"weight"` // escalation multiplier, 0-1
}

// CredibilityMatrix maps source domains onto four trust tiers plus warning
// indicators. Domains are matched by suffix so subdomains inherit the tier.
type CredibilityMatrix struct {
	Tier1 []string `yaml:"tier1" json:"tier1"` // wire services, papers of record
	Tier2 []string `yaml:"tier2" json:"tier2"` // established national outlets
	Tier3 []string `yaml:"tier3" json:"tier3"` // regional / trade press
	Tier4 []string `yaml:"tier4" json:"tier4"` // low-trust aggregators

	// Warning indicators matched against domain and source name.
	PropagandaIndicators  []string `yaml:"propaganda_indicators" json:"propaganda_indicators"`
	FabricationIndicators []string `yaml:"fabrication_indicators" json:"fabrication_indicators"`
	CommercialIndicators  []string `yaml:"commercial_indicators" json:"commercial_indicators"`
}

// Tables is the complete read-only configuration for the scoring stack.
type Tables struct {
	Keywords KeywordTiers `yaml:"keywords" json:"keywords"`

	MajorPowers    []string `yaml:"major_powers" json:"major_powers"`
	ConflictZones  []string `yaml:"conflict_zones" json:"conflict_zones"`
	RegionalPowers []string `yaml:"regional_powers" json:"regional_powers"`

	SignificantOrgs []string `yaml:"significant_orgs" json:"significant_orgs"`
	StrategicTech   []string `yaml:"strategic_tech" json:"strategic_tech"`
	StrategicArms   []string `yaml:"strategic_arms" json:"strategic_arms"`

	Tensions []TensionPair    `yaml:"tensions" json:"tensions"`
	Threats  []ThreatCategory `yaml:"threats" json:"threats"`

	Credibility CredibilityMatrix `yaml:"credibility" json:"credibility"`
}

// Validate checks the tables for operator mistakes. A failure here is fatal
// at startup, before any batch is touched.
func (t Tables) Validate() error {
	if len(t.Keywords.Critical) == 0 && len(t.Keywords.High) == 0 &&
		len(t.Keywords.Medium) == 0 && len(t.Keywords.Low) == 0 {
		return fmt.Errorf("keyword tiers are empty")
	}
	for _, p := range t.Tensions {
		if p.A == "" || p.B == "" {
			return fmt.Errorf("tension pair with empty member: %q/%q", p.A, p.B)
		}
		if p.A == p.B {
			return fmt.Errorf("tension pair %q paired with itself", p.A)
		}
		if p.Weight < 0 || p.Weight > 100 {
			return fmt.Errorf("tension pair %s-%s weight %v out of [0,100]", p.A, p.B, p.Weight)
		}
	}
	for _, c := range t.Threats {
		if c.Name == "" {
			return fmt.Errorf("threat category with empty name")
		}
		if len(c.Keywords) == 0 {
			return fmt.Errorf("threat category %q has no keywords", c.Name)
		}
		if c.Weight <= 0 || c.Weight > 1 {
			return fmt.Errorf("threat category %q weight %v out of (0,1]", c.Name, c.Weight)
		}
	}
	return nil
}

// DefaultTables returns the built-in scoring configuration for the
// geopolitical/military/technology domain.
func DefaultTables() Tables {
	return Tables{
		Keywords: KeywordTiers{
			Critical: []string{
				"nuclear", "invasion", "missile strike", "airstrike", "coup",
				"declaration of war", "chemical weapons", "biological weapons",
				"mobilization", "martial law", "assassination",
			},
			High: []string{
				"missile", "air defense", "deployment", "sanctions", "cyberattack",
				"ballistic", "hypersonic", "warship", "fighter jet", "drone strike",
				"troop movement", "military exercise", "escalation", "blockade",
			},
			Medium: []string{
				"military", "defense", "intelligence", "weapons", "treaty",
				"alliance", "border", "surveillance", "espionage", "arms deal",
				"satellite", "radar", "submarine", "artillery",
			},
			Low: []string{
				"diplomatic", "negotiation", "summit", "minister", "embassy",
				"trade", "energy", "pipeline", "security", "conflict",
			},
		},

		MajorPowers:    []string{"USA", "UNITED STATES", "CHINA", "RUSSIA"},
		ConflictZones:  []string{"UKRAINE", "ISRAEL", "PALESTINE", "TAIWAN", "SYRIA", "YEMEN", "AFGHANISTAN", "IRAQ"},
		RegionalPowers: []string{"IRAN", "NORTH KOREA", "INDIA", "PAKISTAN", "TURKEY", "SAUDI ARABIA", "GERMANY", "FRANCE", "UK", "UNITED KINGDOM", "JAPAN", "SOUTH KOREA", "ISRAEL"},

		SignificantOrgs: []string{
			"NATO", "UN", "EU", "CIA", "FSB", "MOSSAD", "PENTAGON", "KREMLIN",
			"IAEA", "OPEC", "WAGNER", "HEZBOLLAH", "HAMAS", "IRGC", "PLA",
		},
		StrategicTech: []string{
			"HYPERSONIC", "QUANTUM", "AI", "ARTIFICIAL INTELLIGENCE", "SEMICONDUCTOR",
			"SATELLITE", "CYBER", "STEALTH", "EW", "ELECTRONIC WARFARE", "5G", "GPS",
		},
		StrategicArms: []string{
			"ICBM", "SLBM", "S-400", "S-500", "PATRIOT", "HIMARS", "JAVELIN",
			"F-35", "F-16", "SU-57", "B-21", "KINZHAL", "ISKANDER", "TOMAHAWK",
		},

		Tensions: []TensionPair{
			{A: "RUSSIA", B: "UKRAINE", Weight: 95},
			{A: "RUSSIA", B: "USA", Weight: 90},
			{A: "RUSSIA", B: "NATO", Weight: 90},
			{A: "CHINA", B: "USA", Weight: 90},
			{A: "CHINA", B: "TAIWAN", Weight: 90},
			{A: "ISRAEL", B: "IRAN", Weight: 85},
			{A: "ISRAEL", B: "PALESTINE", Weight: 85},
			{A: "NORTH KOREA", B: "SOUTH KOREA", Weight: 80},
			{A: "NORTH KOREA", B: "USA", Weight: 75},
			{A: "INDIA", B: "PAKISTAN", Weight: 75},
			{A: "INDIA", B: "CHINA", Weight: 70},
			{A: "RUSSIA", B: "BELARUS", Weight: 40}, // alignment pair, still strategically notable
		},

		Threats: []ThreatCategory{
			{
				Name:   "nuclear",
				Weight: 1.0,
				Keywords: []string{
					"nuclear", "warhead", "enrichment", "icbm", "fallout",
					"deterrent", "first strike", "tactical nuke",
				},
			},
			{
				Name:   "military",
				Weight: 0.8,
				Keywords: []string{
					"invasion", "offensive", "airstrike", "deployment", "mobilization",
					"troops", "artillery", "casualties", "frontline",
				},
			},
			{
				Name:   "cyber",
				Weight: 0.7,
				Keywords: []string{
					"cyberattack", "ransomware", "malware", "zero-day", "breach",
					"hacking", "infrastructure attack", "ddos",
				},
			},
			{
				Name:   "economic",
				Weight: 0.5,
				Keywords: []string{
					"sanctions", "embargo", "default", "currency crisis", "tariff",
					"export controls", "blockade",
				},
			},
			{
				Name:   "diplomatic",
				Weight: 0.4,
				Keywords: []string{
					"expelled", "recalled ambassador", "ultimatum", "severed ties",
					"withdrew from treaty", "suspended talks",
				},
			},
		},

		Credibility: CredibilityMatrix{
			Tier1: []string{
				"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk", "afp.com",
				"bloomberg.com", "ft.com", "economist.com", "defensenews.com",
			},
			Tier2: []string{
				"nytimes.com", "washingtonpost.com", "wsj.com", "theguardian.com",
				"cnn.com", "nbcnews.com", "cbsnews.com", "abcnews.go.com",
				"janes.com", "foreignpolicy.com", "politico.com", "axios.com",
			},
			Tier3: []string{
				"thehill.com", "newsweek.com", "businessinsider.com", "aljazeera.com",
				"timesofisrael.com", "kyivindependent.com", "scmp.com",
			},
			Tier4: []string{
				"zerohedge.com", "sputniknews.com", "rt.com", "presstv.ir",
				"globaltimes.cn",
			},
			PropagandaIndicators:  []string{"state media", "sputnik", "rt.com", "presstv", "globaltimes"},
			FabricationIndicators: []string{"shocking truth", "they don't want you to know", "wake up", "exposed!!"},
			CommercialIndicators:  []string{"sponsored", "partner content", "affiliate", "promoted"},
		},
	}
}
