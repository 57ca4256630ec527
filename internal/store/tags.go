// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"strings"

	"github.com/toeirei/credmaster/internal/model"
)

// Tags returns a copy of all tags in creation order.
func (s *Store) Tags() []model.Tag {
	out := make([]model.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// TagByID looks up a tag by id.
func (s *Store) TagByID(id string) (model.Tag, bool) {
	if i := s.indexTagByID(id); i >= 0 {
		return s.tags[i], true
	}
	return model.Tag{}, false
}

// TagByName looks up a tag by name, case-insensitively. This is the identity
// used when merging imported tags.
func (s *Store) TagByName(name string) (model.Tag, bool) {
	for _, t := range s.tags {
		if equalFold(t.Name, name) {
			return t, true
		}
	}
	return model.Tag{}, false
}

// AddTag creates a tag. The name must be non-empty and unique under
// case-insensitive comparison.
func (s *Store) AddTag(name, color string) (model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Tag{}, &model.ValidationError{Field: "tag name", Reason: "empty"}
	}
	if _, exists := s.TagByName(name); exists {
		return model.Tag{}, ErrDuplicateTag
	}
	t := model.Tag{ID: newID(), Name: name, Color: color, CreatedAt: s.clk.Now()}
	s.tags = append(s.tags, t)
	return t, nil
}

// RenameTag changes a tag's name, keeping names unique.
func (s *Store) RenameTag(id, name string) error {
	i := s.indexTagByID(id)
	if i < 0 {
		return ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &model.ValidationError{Field: "tag name", Reason: "empty"}
	}
	if other, exists := s.TagByName(name); exists && other.ID != id {
		return ErrDuplicateTag
	}
	s.tags[i].Name = name
	return nil
}

// RecolorTag changes a tag's color.
func (s *Store) RecolorTag(id, color string) error {
	i := s.indexTagByID(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tags[i].Color = color
	return nil
}

// DeleteTag removes a tag and cascades the removal to every account that
// references it, keeping tag references valid at all times.
func (s *Store) DeleteTag(id string) error {
	i := s.indexTagByID(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tags = append(s.tags[:i], s.tags[i+1:]...)
	for j := range s.accounts {
		s.accounts[j].Tags = removeString(s.accounts[j].Tags, id)
	}
	return nil
}

// SetTags replaces an account's tag set. Every id must reference an
// existing tag.
func (s *Store) SetTags(id string, tagIDs []string) error {
	i := s.indexByID(id)
	if i < 0 {
		return ErrNotFound
	}
	for _, tagID := range tagIDs {
		if s.indexTagByID(tagID) < 0 {
			return ErrUnknownTag
		}
	}
	s.accounts[i].Tags = append([]string(nil), tagIDs...)
	return nil
}

// AddTags unions tag ids onto an account, reporting whether it changed.
// Unknown ids are rejected; a merge never drops or invents tags.
func (s *Store) AddTags(id string, tagIDs []string) (bool, error) {
	i := s.indexByID(id)
	if i < 0 {
		return false, ErrNotFound
	}
	for _, tagID := range tagIDs {
		if s.indexTagByID(tagID) < 0 {
			return false, ErrUnknownTag
		}
	}
	changed := false
	for _, tagID := range tagIDs {
		if !containsString(s.accounts[i].Tags, tagID) {
			s.accounts[i].Tags = append(s.accounts[i].Tags, tagID)
			changed = true
		}
	}
	return changed, nil
}

func (s *Store) indexTagByID(id string) int {
	for i := range s.tags {
		if s.tags[i].ID == id {
			return i
		}
	}
	return -1
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
