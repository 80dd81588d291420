// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package store

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/skillify-dev/skillify/internal/models"
)

// CreatePost persists a new forum post.
func (s *Store) CreatePost(ctx context.Context, post *models.Post) (err error) {
	defer func() { record("posts", "create", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		return setDoc(txn, postKeyPrefix+post.ID, post)
	})
	return err
}

// GetPost retrieves a post with its embedded comments, likes and flags.
func (s *Store) GetPost(ctx context.Context, id string) (post *models.Post, err error) {
	defer func() { record("posts", "get", err) }()

	post = &models.Post{}
	err = s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, postKeyPrefix+id, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies a mutation to the post document in one transaction.
// All comment, like and flag operations flow through here so concurrent
// writes to the same post serialize on the Badger transaction.
func (s *Store) UpdatePost(ctx context.Context, id string, mutate func(*models.Post) error) (post *models.Post, err error) {
	defer func() { record("posts", "update", err) }()

	post = &models.Post{}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := getDoc(txn, postKeyPrefix+id, post); err != nil {
			return err
		}
		if err := mutate(post); err != nil {
			return err
		}
		post.UpdatedAt = time.Now().UTC()
		return setDoc(txn, postKeyPrefix+id, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Used by admin moderation.
func (s *Store) DeletePost(ctx context.Context, id string) (err error) {
	defer func() { record("posts", "delete", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		if _, getErr := txn.Get([]byte(postKeyPrefix + id)); getErr != nil {
			return ErrNotFound
		}
		return txn.Delete([]byte(postKeyPrefix + id))
	})
	return err
}

// ListPosts returns every post sorted by creation time, newest first.
func (s *Store) ListPosts(ctx context.Context) (posts []*models.Post, err error) {
	defer func() { record("posts", "list", err) }()

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(postKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			post := &models.Post{}
			valErr := it.Item().Value(func(val []byte) error {
				return unmarshalDoc(val, post)
			})
			if valErr != nil {
				return valErr
			}
			posts = append(posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// ListFlaggedPosts returns posts carrying at least one pending flag on the
// post itself or any of its comments. Admin moderation queue.
func (s *Store) ListFlaggedPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	flagged := make([]*models.Post, 0)
	for _, p := range posts {
		if p.PendingFlagCount() > 0 {
			flagged = append(flagged, p)
		}
	}
	return flagged, nil
}

// AddComment appends a comment to the post and returns it.
func (s *Store) AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Comment, error) {
	comment.ID = uuid.New().String()
	comment.CreatedAt = time.Now().UTC()
	if comment.Flags == nil {
		comment.Flags = []models.Flag{}
	}

	_, err := s.UpdatePost(ctx, postID, func(p *models.Post) error {
		p.Comments = append(p.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ToggleLike flips the user's like on a post. Returns the updated post and
// whether the post is liked after the call.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, bool, error) {
	liked := false
	post, err := s.UpdatePost(ctx, postID, func(p *models.Post) error {
		liked = p.ToggleLike(userID)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return post, liked, nil
}

// FlagPost adds a moderation flag to a post. A reporter may hold at most one
// pending flag per post; once that flag is resolved they may flag again.
func (s *Store) FlagPost(ctx context.Context, postID, reporterID, reason string) (*models.Flag, error) {
	flag := newFlag(reporterID, reason)
	_, err := s.UpdatePost(ctx, postID, func(p *models.Post) error {
		if p.HasPendingFlagFrom(reporterID) {
			return ErrDuplicateFlag
		}
		p.Flags = append(p.Flags, flag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &flag, nil
}

// FlagComment adds a moderation flag to a comment, with the same one-pending
// rule scoped to the comment.
func (s *Store) FlagComment(ctx context.Context, postID, commentID, reporterID, reason string) (*models.Flag, error) {
	flag := newFlag(reporterID, reason)
	_, err := s.UpdatePost(ctx, postID, func(p *models.Post) error {
		comment := p.FindComment(commentID)
		if comment == nil {
			return ErrNotFound
		}
		if comment.HasPendingFlagFrom(reporterID) {
			return ErrDuplicateFlag
		}
		comment.Flags = append(comment.Flags, flag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &flag, nil
}

// ResolveFlag moves a pending flag to reviewed or dismissed. The flag may
// live on the post or on any of its comments. Returns the updated post and
// the author ID of the flagged content for follow-up notification.
func (s *Store) ResolveFlag(ctx context.Context, postID, flagID string, status models.FlagStatus) (*models.Post, string, error) {
	var contentAuthor string
	now := time.Now().UTC()

	post, err := s.UpdatePost(ctx, postID, func(p *models.Post) error {
		for i := range p.Flags {
			if p.Flags[i].ID == flagID {
				if p.Flags[i].Status.Terminal() {
					return ErrNotFound
				}
				p.Flags[i].Status = status
				p.Flags[i].ResolvedAt = &now
				contentAuthor = p.AuthorID
				return nil
			}
		}
		for ci := range p.Comments {
			for fi := range p.Comments[ci].Flags {
				if p.Comments[ci].Flags[fi].ID == flagID {
					if p.Comments[ci].Flags[fi].Status.Terminal() {
						return ErrNotFound
					}
					p.Comments[ci].Flags[fi].Status = status
					p.Comments[ci].Flags[fi].ResolvedAt = &now
					contentAuthor = p.Comments[ci].AuthorID
					return nil
				}
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, "", err
	}
	return post, contentAuthor, nil
}

func newFlag(reporterID, reason string) models.Flag {
	return models.Flag{
		ID:         uuid.New().String(),
		ReporterID: reporterID,
		Reason:     reason,
		Status:     models.FlagPending,
		CreatedAt:  time.Now().UTC(),
	}
}
