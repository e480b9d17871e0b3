// Package portspec parses the --ports command-line grammar into an
// ordered list of port addresses, each clamped to [0, 0xFFFF].
package portspec

import (
	"fmt"
	"strconv"
	"strings"
)

const maxPort = 0xFFFF

// Parse splits spec on commas; each token is either a single unsigned
// integer or a LOW-HIGH range, both accepting 0x-hex, 0-octal, or decimal
// notation. Ranges expand inclusively, in order, duplicates permitted.
// An empty spec yields a nil, empty list ("no list" — draw the port slot
// uniformly over the full 16-bit space).
func Parse(spec string) ([]uint32, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var ports []uint32
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		low, high, isRange := strings.Cut(token, "-")
		if isRange {
			lo, err := parsePort(low)
			if err != nil {
				return nil, fmt.Errorf("parsing port range %q: %w", token, err)
			}
			hi, err := parsePort(high)
			if err != nil {
				return nil, fmt.Errorf("parsing port range %q: %w", token, err)
			}
			if hi < lo {
				return nil, fmt.Errorf("parsing port range %q: high end below low end", token)
			}
			for p := lo; p <= hi; p++ {
				ports = append(ports, p)
				if p == maxPort {
					break // avoid wrapping when hi == maxPort
				}
			}
			continue
		}

		p, err := parsePort(token)
		if err != nil {
			return nil, fmt.Errorf("parsing port %q: %w", token, err)
		}
		ports = append(ports, p)
	}
	return ports, nil
}

// parsePort parses a single token (accepting 0x/0/decimal notation per
// strconv.ParseUint base 0) and clamps it to maxPort.
func parsePort(tok string) (uint32, error) {
	v, err := strconv.ParseUint(tok, 0, 64)
	if err != nil {
		return 0, err
	}
	if v > maxPort {
		v = maxPort
	}
	return uint32(v), nil
}
