// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

// Package recommend aggregates personalized learning resources from the
// video catalog based on a user's recorded skills and goals.
package recommend

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/skillify-dev/skillify/internal/catalog"
	"github.com/skillify-dev/skillify/internal/config"
	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/metrics"
	"github.com/skillify-dev/skillify/internal/models"
)

// Library is the slice of the store the aggregator reads.
type Library interface {
	ListSkillsByUser(ctx context.Context, userID string) ([]*models.Skill, error)
	ListGoalsByUser(ctx context.Context, userID string) ([]*models.Goal, error)
}

// Filters narrows and pages the aggregated resource list. The "all" value
// (or empty) disables the corresponding exact-match filter.
type Filters struct {
	Type     string
	Level    string
	Platform string

	// Search is a case-insensitive substring match on title or description.
	Search string

	Page     int
	PageSize int
}

// Result is one page of recommendations.
type Result struct {
	Resources        []models.Resource `json:"resources"`
	HasSkillsOrGoals bool              `json:"hasSkillsOrGoals"`
	TotalItems       int               `json:"totalItems"`
	TotalPages       int               `json:"totalPages"`
	Page             int               `json:"page"`
	PageSize         int               `json:"pageSize"`
}

// Aggregator fans skill terms out to the catalog and merges the responses.
type Aggregator struct {
	library Library
	catalog catalog.API
	cfg     config.RecommendConfig
}

// NewAggregator wires the aggregator. The catalog is expected to already
// carry its cache and circuit breaker layers.
func NewAggregator(library Library, cat catalog.API, cfg config.RecommendConfig) *Aggregator {
	return &Aggregator{library: library, catalog: cat, cfg: cfg}
}

// Recommend builds one page of recommendations for the user:
//
//  1. Collect distinct skill names from the user's skills and from the
//     skills their goals reference.
//  2. With no terms, return hasSkillsOrGoals=false without touching the
//     catalog.
//  3. Search the catalog once per term, concurrently but bounded, with
//     per-term failure isolation: a failing term contributes nothing.
//  4. Flatten and dedupe by resource ID (last seen wins).
//  5. Apply filters, sort by engagement, paginate.
func (a *Aggregator) Recommend(ctx context.Context, userID string, f Filters) (*Result, error) {
	metrics.RecommendationRequestsTotal.Inc()

	f = a.normalizeFilters(f)

	terms, err := a.collectTerms(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return &Result{
			Resources:        []models.Resource{},
			HasSkillsOrGoals: false,
			TotalItems:       0,
			TotalPages:       0,
			Page:             f.Page,
			PageSize:         f.PageSize,
		}, nil
	}

	merged := a.searchTerms(ctx, terms)
	merged = dedupeByID(merged)
	merged = applyFilters(merged, f)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].EngagementScore() > merged[j].EngagementScore()
	})

	totalItems := len(merged)
	totalPages := (totalItems + f.PageSize - 1) / f.PageSize

	start := (f.Page - 1) * f.PageSize
	end := start + f.PageSize
	var page []models.Resource
	switch {
	case start >= totalItems:
		page = []models.Resource{}
	case end > totalItems:
		page = merged[start:]
	default:
		page = merged[start:end]
	}

	return &Result{
		Resources:        page,
		HasSkillsOrGoals: true,
		TotalItems:       totalItems,
		TotalPages:       totalPages,
		Page:             f.Page,
		PageSize:         f.PageSize,
	}, nil
}

// normalizeFilters clamps paging values into the configured bounds.
func (a *Aggregator) normalizeFilters(f Filters) Filters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = a.cfg.DefaultPageSize
	}
	if f.PageSize > a.cfg.MaxPageSize {
		f.PageSize = a.cfg.MaxPageSize
	}
	return f
}

// collectTerms returns the distinct skill names contributing search terms.
// Goals contribute through the skills they reference, so a goal whose skill
// record still exists keeps that skill recommendable. Names compare
// case-insensitively; the first-seen spelling is kept for the query.
func (a *Aggregator) collectTerms(ctx context.Context, userID string) ([]string, error) {
	skills, err := a.library.ListSkillsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := a.library.ListGoalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	nameByID := make(map[string]string, len(skills))
	for _, s := range skills {
		nameByID[s.ID] = s.Name
	}

	seen := make(map[string]struct{})
	var terms []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		terms = append(terms, name)
	}

	for _, s := range skills {
		add(s.Name)
	}
	for _, g := range goals {
		for _, skillID := range g.SkillIDs {
			if name, ok := nameByID[skillID]; ok {
				add(name)
			}
		}
	}
	return terms, nil
}

// searchTerms runs one catalog search per term with bounded concurrency.
// Term results keep their term order so dedupe is deterministic. A failing
// term logs and contributes an empty slice; user requests never fail
// because one skill's search did.
func (a *Aggregator) searchTerms(ctx context.Context, terms []string) []models.Resource {
	perTerm := make([][]models.Resource, len(terms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.SearchConcurrency)

	for i, term := range terms {
		i, term := i, term
		g.Go(func() error {
			result, err := a.catalog.Search(gctx, catalog.SearchOptions{
				Query:    term + " tutorial",
				Duration: "medium",
			})
			if err != nil {
				metrics.RecommendationTermFailuresTotal.Inc()
				logging.Ctx(gctx).Warn().Err(err).Str("term", term).
					Msg("Skill search failed, contributing no results")
				return nil
			}
			perTerm[i] = result.Resources
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	var merged []models.Resource
	for _, resources := range perTerm {
		merged = append(merged, resources...)
	}
	return merged
}

// dedupeByID collapses duplicate resource IDs. The last occurrence wins:
// its data replaces the earlier one in place, so a video surfaced by two
// skills carries the stats of the most recent sighting.
func dedupeByID(in []models.Resource) []models.Resource {
	out := make([]models.Resource, 0, len(in))
	index := make(map[string]int, len(in))
	for _, r := range in {
		if pos, ok := index[r.ID]; ok {
			out[pos] = r
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}

// applyFilters narrows the merged list. Type, level and platform are exact
// matches unless empty or "all"; search is a case-insensitive substring
// test against title or description.
func applyFilters(in []models.Resource, f Filters) []models.Resource {
	typeFilter := filterValue(f.Type)
	levelFilter := filterValue(f.Level)
	platformFilter := filterValue(f.Platform)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Resource, 0, len(in))
	for _, r := range in {
		if typeFilter != "" && !strings.EqualFold(r.Type, typeFilter) {
			continue
		}
		if levelFilter != "" && !strings.EqualFold(string(r.Level), levelFilter) {
			continue
		}
		if platformFilter != "" && !strings.EqualFold(r.Platform, platformFilter) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Title), search) &&
			!strings.Contains(strings.ToLower(r.Description), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// filterValue treats empty and "all" as no filter.
func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
