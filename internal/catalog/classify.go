// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package catalog

import (
	"strings"

	"github.com/skillify-dev/skillify/internal/models"
)

// beginnerKeywords are checked first; any match classifies the resource as
// Beginner regardless of advanced matches.
var beginnerKeywords = []string{
	"beginner",
	"beginners",
	"introduction",
	"intro to",
	"getting started",
	"basics",
	"fundamentals",
	"for dummies",
	"from scratch",
	"crash course",
	"101",
	"first steps",
	"step by step",
}

var advancedKeywords = []string{
	"advanced",
	"expert",
	"in depth",
	"in-depth",
	"deep dive",
	"masterclass",
	"mastering",
	"internals",
	"optimization",
	"architecture",
	"professional",
	"pro tips",
}

// Classify derives a skill level from a resource's title, description and
// tags. The lower-cased concatenation is tested against the beginner list,
// then the advanced list; first match wins, default Intermediate. Both the
// search and the single-video paths use this same function so a resource
// never classifies differently between the list and detail views.
func Classify(title, description string, tags []string) models.Level {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte(' ')
	b.WriteString(description)
	for _, tag := range tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	text := strings.ToLower(b.String())

	for _, kw := range beginnerKeywords {
		if strings.Contains(text, kw) {
			return models.LevelBeginner
		}
	}
	for _, kw := range advancedKeywords {
		if strings.Contains(text, kw) {
			return models.LevelAdvanced
		}
	}
	return models.LevelIntermediate
}
