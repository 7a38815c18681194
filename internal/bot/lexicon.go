package bot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LocationAlias maps common misspellings and transliterations to the
// canonical spelling used in the listings database.
type LocationAlias struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// Lexicon holds the static matching vocabulary for the extractor. Order
// matters: the first city or zone whose variant appears in the text wins.
type Lexicon struct {
	Cities    []LocationAlias `yaml:"cities"`
	Zones     []string        `yaml:"zones"`
	Greetings []string        `yaml:"greetings"`
	Keywords  []string        `yaml:"keywords"`
}

// DefaultLexicon returns the built-in vocabulary.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Cities: []LocationAlias{
			{Canonical: "תל אביב", Variants: []string{"תל אביב", "תל אבב", "תל אבי", "טל אביב"}},
			{Canonical: "רמת גן", Variants: []string{"רמת גן", "רמתגן", "רמאת גן", "רמט גן"}},
			{Canonical: "ירושלים", Variants: []string{"ירושלים", "ירושלם", "ירושליים", "ירשלים"}},
			{Canonical: "חיפה", Variants: []string{"חיפה", "חיפא", "חיפהה"}},
			{Canonical: "באר שבע", Variants: []string{"באר שבע", "באר שובע", "באר שוע", "באר שסע", "בר שבע", "באר שבעה"}},
		},
		Zones:     []string{"כרם התימנים", "תל ברוך צפון", "הצפון הישן", "מרכז העיר", "רמת החייל"},
		Greetings: []string{"היי", "מה נשמע", "מה שלומך", "בוקר טוב", "שלום", "צהריים טובים"},
		Keywords:  []string{"דירה", "דירות", "חדר", "קומה", "מיקום", "מחיר", "נדלן", "חיפוש"},
	}
}

// LoadLexicon reads a vocabulary override from a YAML file. Sections left
// empty in the file fall back to the built-in defaults.
func LoadLexicon(path string) (Lexicon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	var lex Lexicon
	if err := yaml.Unmarshal(b, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon: %w", err)
	}
	def := DefaultLexicon()
	if len(lex.Cities) == 0 {
		lex.Cities = def.Cities
	}
	if len(lex.Zones) == 0 {
		lex.Zones = def.Zones
	}
	if len(lex.Greetings) == 0 {
		lex.Greetings = def.Greetings
	}
	if len(lex.Keywords) == 0 {
		lex.Keywords = def.Keywords
	}
	return lex, nil
}
