// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package store

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/skillify-dev/skillify/internal/models"
)

// Report aggregates platform-wide counts for the admin dashboard.
type Report struct {
	Users            int            `json:"users"`
	Skills           int            `json:"skills"`
	Goals            int            `json:"goals"`
	GoalsByStatus    map[string]int `json:"goalsByStatus"`
	Posts            int            `json:"posts"`
	Comments         int            `json:"comments"`
	PendingFlags     int            `json:"pendingFlags"`
	Concerns         int            `json:"concerns"`
	ConcernsByStatus map[string]int `json:"concernsByStatus"`
	GeneratedAt      string         `json:"generatedAt"`
}

// BuildReport scans the keyspace and aggregates entity counts. All counting
// happens inside one read transaction for a consistent snapshot.
func (s *Store) BuildReport(ctx context.Context) (report *Report, err error) {
	defer func() { record("reports", "build", err) }()

	report = &Report{
		GoalsByStatus:    make(map[string]int),
		ConcernsByStatus: make(map[string]int),
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	err = s.db.View(func(txn *badger.Txn) error {
		report.Users = countPrefixTxn(txn, userKeyPrefix)
		report.Skills = countPrefixTxn(txn, skillKeyPrefix)

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		goalPrefix := []byte(goalKeyPrefix)
		for it.Seek(goalPrefix); it.ValidForPrefix(goalPrefix); it.Next() {
			goal := &models.Goal{}
			if valErr := it.Item().Value(func(val []byte) error {
				return unmarshalDoc(val, goal)
			}); valErr != nil {
				return valErr
			}
			report.Goals++
			report.GoalsByStatus[string(goal.Status)]++
		}

		postPrefix := []byte(postKeyPrefix)
		for it.Seek(postPrefix); it.ValidForPrefix(postPrefix); it.Next() {
			post := &models.Post{}
			if valErr := it.Item().Value(func(val []byte) error {
				return unmarshalDoc(val, post)
			}); valErr != nil {
				return valErr
			}
			report.Posts++
			report.Comments += len(post.Comments)
			report.PendingFlags += post.PendingFlagCount()
		}

		concernPrefix := []byte(concernKeyPrefix)
		for it.Seek(concernPrefix); it.ValidForPrefix(concernPrefix); it.Next() {
			concern := &models.Concern{}
			if valErr := it.Item().Value(func(val []byte) error {
				return unmarshalDoc(val, concern)
			}); valErr != nil {
				return valErr
			}
			report.Concerns++
			report.ConcernsByStatus[string(concern.Status)]++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
