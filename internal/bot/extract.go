package bot

import (
	"regexp"
	"strconv"
	"strings"
)

// Params is the structured result of running the extractor over one message.
// City and Zone are canonical names; empty string means not detected.
type Params struct {
	City      string
	Zone      string
	MinPrice  *int
	MaxPrice  *int
	Rooms     *int
	Floor     *int
	Limit     *int
	Casual    bool
	Unrelated bool
}

// HasSearchFilter reports whether any listing filter was detected. Limit on
// its own does not count: a bare result cap is not a search.
func (p Params) HasSearchFilter() bool {
	return p.City != "" || p.Zone != "" || p.MinPrice != nil || p.MaxPrice != nil ||
		p.Rooms != nil || p.Floor != nil
}

var (
	priceAboveRe = regexp.MustCompile(`(?:מעל|יותר מ)\s*(\d{3,7})`)
	priceBelowRe = regexp.MustCompile(`(?:עד|מתחת ל)\s*(\d{3,7})`)
	priceBareRe  = regexp.MustCompile(`(\d{3,7})`)
	roomsRe      = regexp.MustCompile(`(\d+)\s*חדר`)
	floorRe      = regexp.MustCompile(`קומה\s*(\d+)`)
	limitRe      = regexp.MustCompile(`(\d+)\s*דירות?`)
)

// Extractor turns a raw message into Params. It is pure and deterministic;
// all matching happens on the lower-cased text.
type Extractor struct {
	lex Lexicon
}

func NewExtractor(lex Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

func (e *Extractor) Extract(text string) Params {
	lower := strings.ToLower(text)
	var p Params

	for _, city := range e.lex.Cities {
		if containsAny(lower, city.Variants) {
			p.City = city.Canonical
			break
		}
	}
	for _, zone := range e.lex.Zones {
		if strings.Contains(lower, zone) {
			p.Zone = zone
			break
		}
	}

	// Price matchers run in a fixed order and are not mutually exclusive:
	// the bare-number matcher runs last and overwrites MaxPrice whenever any
	// 3-7 digit run is present, even one already claimed by the "above"
	// matcher. Search flows depend on this exact behavior; see the
	// regression test before touching the order.
	if m := priceAboveRe.FindStringSubmatch(lower); m != nil {
		p.MinPrice = atoiRef(m[1])
	}
	if m := priceBelowRe.FindStringSubmatch(lower); m != nil {
		p.MaxPrice = atoiRef(m[1])
	}
	if m := priceBareRe.FindStringSubmatch(lower); m != nil {
		p.MaxPrice = atoiRef(m[1])
	}

	if m := roomsRe.FindStringSubmatch(lower); m != nil {
		p.Rooms = atoiRef(m[1])
	}
	if m := floorRe.FindStringSubmatch(lower); m != nil {
		p.Floor = atoiRef(m[1])
	}
	if m := limitRe.FindStringSubmatch(lower); m != nil {
		p.Limit = atoiRef(m[1])
	}

	p.Casual = containsAny(lower, e.lex.Greetings)
	if !containsAny(lower, e.lex.Keywords) && !p.Casual {
		p.Unrelated = true
	}
	return p
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func atoiRef(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
