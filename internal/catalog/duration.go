// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package catalog

import (
	"strconv"
	"strings"
)

// ParseISODuration converts an ISO-8601 video duration ("PT1H2M3S") into
// whole seconds. Malformed input returns 0; the value is display metadata,
// not something worth failing a request over.
func ParseISODuration(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "PT") {
		return 0
	}
	s = strings.TrimPrefix(s, "PT")

	seconds := 0
	num := strings.Builder{}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			num.WriteRune(r)
			continue
		}
		n, err := strconv.Atoi(num.String())
		if err != nil {
			return 0
		}
		num.Reset()
		switch r {
		case 'H':
			seconds += n * 3600
		case 'M':
			seconds += n * 60
		case 'S':
			seconds += n
		default:
			return 0
		}
	}
	return seconds
}
