package derive

import (
	"strings"

	"github.com/pkg/errors"
)

// Cap is a derivable capability.
type Cap int8

// Capabilities which may be derived for a node-kind.
const (
	Eq        Cap = iota // structural equality
	Ord                  // total structural order
	Show                 // rendering
	Functor              // mapping over child positions
	SmartCons            // smart constructors and matchers
)

var capNames = []string{"eq", "ord", "show", "functor", "cons"}

func (c Cap) String() string {
	if c < 0 || int(c) >= len(capNames) {
		return "<unknown capability>"
	}
	return capNames[c]
}

// AllCaps lists all capabilities.
var AllCaps = []Cap{Eq, Ord, Show, Functor, SmartCons}

// ParseCaps parses a comma-separated list of capability names, e.g.
// "eq,ord,show". "all" stands for all capabilities.
func ParseCaps(s string) ([]Cap, error) {
	var caps []Cap
	seen := make(map[Cap]bool)
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if name == "all" {
			return AllCaps, nil
		}
		found := false
		for i, cn := range capNames {
			if cn == name {
				if !seen[Cap(i)] {
					caps = append(caps, Cap(i))
					seen[Cap(i)] = true
				}
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("unknown capability %q", name)
		}
	}
	if len(caps) == 0 {
		return nil, errors.New("no capabilities given")
	}
	return caps, nil
}
