// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/skillify-dev/skillify/internal/catalog"
	"github.com/skillify-dev/skillify/internal/config"
	"github.com/skillify-dev/skillify/internal/models"
)

// fakeLibrary serves fixed skills and goals.
type fakeLibrary struct {
	skills []*models.Skill
	goals  []*models.Goal
}

func (f *fakeLibrary) ListSkillsByUser(ctx context.Context, userID string) ([]*models.Skill, error) {
	return f.skills, nil
}

func (f *fakeLibrary) ListGoalsByUser(ctx context.Context, userID string) ([]*models.Goal, error) {
	return f.goals, nil
}

// fakeCatalog returns canned resources per query and counts calls.
type fakeCatalog struct {
	mu      sync.Mutex
	calls   int
	queries []string
	results map[string][]models.Resource
	fail    map[string]bool
}

func (f *fakeCatalog) Search(ctx context.Context, opts catalog.SearchOptions) (*catalog.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.queries = append(f.queries, opts.Query)

	term := strings.TrimSuffix(opts.Query, " tutorial")
	if f.fail[term] {
		return nil, catalog.ErrCatalogUnavailable
	}
	return &catalog.SearchResult{Resources: f.results[term]}, nil
}

func (f *fakeCatalog) Video(ctx context.Context, id string) (*models.Resource, error) {
	return nil, catalog.ErrVideoNotFound
}

func testRecommendConfig() config.RecommendConfig {
	return config.RecommendConfig{
		SearchConcurrency: 4,
		DefaultPageSize:   12,
		MaxPageSize:       50,
	}
}

func newTestAggregator(lib Library, cat catalog.API) *Aggregator {
	return NewAggregator(lib, cat, testRecommendConfig())
}

func TestRecommend_NoSkillsOrGoals(t *testing.T) {
	cat := &fakeCatalog{}
	agg := newTestAggregator(&fakeLibrary{}, cat)

	result, err := agg.Recommend(context.Background(), "u1", Filters{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.HasSkillsOrGoals {
		t.Error("Expected hasSkillsOrGoals=false with no skills or goals")
	}
	if len(result.Resources) != 0 {
		t.Errorf("Expected empty resources, got %d", len(result.Resources))
	}
	if cat.calls != 0 {
		t.Errorf("Expected no catalog calls, got %d", cat.calls)
	}
}

func TestRecommend_TermsFromSkillsAndGoals(t *testing.T) {
	lib := &fakeLibrary{
		skills: []*models.Skill{
			{ID: "s1", Name: "Go"},
			{ID: "s2", Name: "Docker"},
		},
		goals: []*models.Goal{
			// References s1 again and a skill that no longer exists.
			{ID: "g1", SkillIDs: []string{"s1", "gone"}},
		},
	}
	cat := &fakeCatalog{results: map[string][]models.Resource{}}
	agg := newTestAggregator(lib, cat)

	_, err := agg.Recommend(context.Background(), "u1", Filters{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if cat.calls != 2 {
		t.Errorf("Expected 2 searches for 2 distinct skills, got %d: %v", cat.calls, cat.queries)
	}
	for _, q := range cat.queries {
		if !strings.HasSuffix(q, " tutorial") {
			t.Errorf("Expected query with tutorial suffix, got %q", q)
		}
	}
}

func TestRecommend_DuplicateSkillNamesCollapse(t *testing.T) {
	lib := &fakeLibrary{
		skills: []*models.Skill{
			{ID: "s1", Name: "Go"},
			{ID: "s2", Name: "go"},
			{ID: "s3", Name: " GO "},
		},
	}
	cat := &fakeCatalog{}
	agg := newTestAggregator(lib, cat)

	_, err := agg.Recommend(context.Background(), "u1", Filters{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if cat.calls != 1 {
		t.Errorf("Expected 1 search for case-variant duplicates, got %d", cat.calls)
	}
	if cat.queries[0] != "Go tutorial" {
		t.Errorf("Expected first-seen spelling to be queried, got %q", cat.queries[0])
	}
}

func TestRecommend_FailingTermIsIsolated(t *testing.T) {
	lib := &fakeLibrary{
		skills: []*models.Skill{
			{ID: "s1", Name: "Go"},
			{ID: "s2", Name: "Docker"},
		},
	}
	cat := &fakeCatalog{
		results: map[string][]models.Resource{
			"Go": {{ID: "v1", Title: "Go Tutorial", Views: 10}},
		},
		fail: map[string]bool{"Docker": true},
	}
	agg := newTestAggregator(lib, cat)

	result, err := agg.Recommend(context.Background(), "u1", Filters{})
	if err != nil {
		t.Fatalf("Expected partial results, got error: %v", err)
	}
	if len(result.Resources) != 1 || result.Resources[0].ID != "v1" {
		t.Errorf("Expected the surviving term's resource, got %+v", result.Resources)
	}
}

func TestDedupeByID_LastSeenWins(t *testing.T) {
	in := []models.Resource{
		{ID: "a", Views: 1},
		{ID: "b", Views: 2},
		{ID: "a", Views: 99},
		{ID: "c", Views: 3},
	}

	out := dedupeByID(in)

	if len(out) != 3 {
		t.Fatalf("Expected 3 unique resources, got %d", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Errorf("Expected first-seen order preserved, got %v", []string{out[0].ID, out[1].ID, out[2].ID})
	}
	if out[0].Views != 99 {
		t.Errorf("Expected last occurrence's data to win, got views %d", out[0].Views)
	}
}

func TestRecommend_SortsByEngagement(t *testing.T) {
	lib := &fakeLibrary{skills: []*models.Skill{{ID: "s1", Name: "Go"}}}
	cat := &fakeCatalog{
		results: map[string][]models.Resource{
			"Go": {
				// 10 views, 5 likes: score 50.
				{ID: "liked", Views: 10, Likes: 5},
				// 1000 views, 0 likes: likes floor to 1, score 1000.
				{ID: "viewed", Views: 1000, Likes: 0},
			},
		},
	}
	agg := newTestAggregator(lib, cat)

	result, err := agg.Recommend(context.Background(), "u1", Filters{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if result.Resources[0].ID != "viewed" {
		t.Errorf("Expected high-view zero-like resource first, got %q", result.Resources[0].ID)
	}
}

func TestRecommend_Pagination(t *testing.T) {
	resources := make([]models.Resource, 25)
	for i := range resources {
		// Descending views keeps the sort stable and predictable.
		resources[i] = models.Resource{ID: fmt.Sprintf("v%02d", i), Views: int64(100 - i)}
	}
	lib := &fakeLibrary{skills: []*models.Skill{{ID: "s1", Name: "Go"}}}
	cat := &fakeCatalog{results: map[string][]models.Resource{"Go": resources}}
	agg := newTestAggregator(lib, cat)

	result, err := agg.Recommend(context.Background(), "u1", Filters{Page: 3, PageSize: 9})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.TotalItems != 25 {
		t.Errorf("Expected 25 total items, got %d", result.TotalItems)
	}
	if result.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", result.TotalPages)
	}
	if len(result.Resources) != 7 {
		t.Errorf("Expected 7 items on the last page, got %d", len(result.Resources))
	}

	// Past the last page.
	result, err = agg.Recommend(context.Background(), "u1", Filters{Page: 4, PageSize: 9})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(result.Resources) != 0 {
		t.Errorf("Expected empty page past the end, got %d items", len(result.Resources))
	}
}

func TestRecommend_ClampsPageSize(t *testing.T) {
	lib := &fakeLibrary{skills: []*models.Skill{{ID: "s1", Name: "Go"}}}
	cat := &fakeCatalog{}
	agg := newTestAggregator(lib, cat)

	result, err := agg.Recommend(context.Background(), "u1", Filters{Page: -2, PageSize: 9999})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if result.Page != 1 {
		t.Errorf("Expected page clamped to 1, got %d", result.Page)
	}
	if result.PageSize != 50 {
		t.Errorf("Expected page size clamped to 50, got %d", result.PageSize)
	}
}

func TestApplyFilters(t *testing.T) {
	in := []models.Resource{
		{ID: "a", Type: "video", Level: models.LevelBeginner, Platform: "YouTube", Title: "Go Basics"},
		{ID: "b", Type: "video", Level: models.LevelAdvanced, Platform: "YouTube", Title: "Go Internals"},
		{ID: "c", Type: "course", Level: models.LevelBeginner, Platform: "Udemy", Title: "Docker", Description: "container basics"},
	}

	tests := []struct {
		name    string
		filters Filters
		wantIDs []string
	}{
		{"no filters", Filters{}, []string{"a", "b", "c"}},
		{"all is no filter", Filters{Type: "all", Level: "All"}, []string{"a", "b", "c"}},
		{"level exact", Filters{Level: "beginner"}, []string{"a", "c"}},
		{"type exact", Filters{Type: "course"}, []string{"c"}},
		{"platform exact", Filters{Platform: "youtube"}, []string{"a", "b"}},
		{"search title", Filters{Search: "internals"}, []string{"b"}},
		{"search description", Filters{Search: "container"}, []string{"c"}},
		{"combined", Filters{Level: "Beginner", Search: "go"}, []string{"a"}},
		{"no match", Filters{Search: "kubernetes"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := applyFilters(in, tt.filters)
			var ids []string
			for _, r := range out {
				ids = append(ids, r.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("Expected %v, got %v", tt.wantIDs, ids)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Fatalf("Expected %v, got %v", tt.wantIDs, ids)
				}
			}
		})
	}
}
