/* Copyright 2025 StudyFlow Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	pkgErrors "github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/server/database"
	"github.com/studyflow/studyflow/pkg/server/permissions"
	"gorm.io/gorm"
)

const (
	noteTitleMinLen   = 3
	noteTitleMaxLen   = 500
	noteContentMinLen = 10
	noteContentMaxLen = 100000

	defaultNotesPerPage = 20
	maxNotesPerPage     = 100
)

func validateNoteTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < noteTitleMinLen || n > noteTitleMaxLen {
		return NewValidationError(fmt.Sprintf("Title must be between %d and %d characters", noteTitleMinLen, noteTitleMaxLen))
	}

	return nil
}

func validateNoteContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < noteContentMinLen || n > noteContentMaxLen {
		return NewValidationError(fmt.Sprintf("Content must be between %d and %d characters", noteContentMinLen, noteContentMaxLen))
	}

	return nil
}

// CreateNoteParams is the payload for creating a note
type CreateNoteParams struct {
	Title       string
	Content     string
	Tags        []string
	IsPublic    *bool
	Attachments database.JSON
}

// CreateNote creates a note owned by the given user
func (a *App) CreateNote(user database.User, p CreateNoteParams) (database.Note, error) {
	if err := validateNoteTitle(p.Title); err != nil {
		return database.Note{}, err
	}
	if err := validateNoteContent(p.Content); err != nil {
		return database.Note{}, err
	}

	isPublic := true
	if p.IsPublic != nil {
		isPublic = *p.IsPublic
	}

	note := database.Note{
		Title:       p.Title,
		Content:     p.Content,
		Tags:        p.Tags,
		IsPublic:    isPublic,
		Attachments: p.Attachments,
		AuthorID:    user.ID,
	}
	if err := a.DB.Create(&note).Error; err != nil {
		return database.Note{}, pkgErrors.Wrap(err, "saving note")
	}

	note.Author = user

	return note, nil
}

// UpdateNoteParams is the payload for updating a note. Nil fields are left
// unchanged.
type UpdateNoteParams struct {
	Title       *string
	Content     *string
	Tags        *[]string
	IsPublic    *bool
	Attachments *database.JSON
}

// UpdateNote updates the note with the given id on behalf of the given user
func (a *App) UpdateNote(user database.User, noteID int, p UpdateNoteParams) (database.Note, error) {
	note, err := a.getNote(noteID)
	if err != nil {
		return database.Note{}, err
	}
	if !permissions.CanMutateNote(&user, note) {
		return database.Note{}, ErrForbidden
	}

	if p.Title != nil {
		if err := validateNoteTitle(*p.Title); err != nil {
			return database.Note{}, err
		}
		note.Title = *p.Title
	}
	if p.Content != nil {
		if err := validateNoteContent(*p.Content); err != nil {
			return database.Note{}, err
		}
		note.Content = *p.Content
	}
	if p.Tags != nil {
		note.Tags = *p.Tags
	}
	if p.IsPublic != nil {
		note.IsPublic = *p.IsPublic
	}
	if p.Attachments != nil {
		note.Attachments = *p.Attachments
	}

	if err := a.DB.Save(&note).Error; err != nil {
		return database.Note{}, pkgErrors.Wrap(err, "saving note")
	}

	// only the author can update, so the author is the acting user
	note.Author = user

	return note, nil
}

// DeleteNote deletes the note with the given id on behalf of the given user.
// Generated contents and comments on the note are removed by the cascade.
func (a *App) DeleteNote(user database.User, noteID int) error {
	note, err := a.getNote(noteID)
	if err != nil {
		return err
	}
	if !permissions.CanMutateNote(&user, note) {
		return ErrForbidden
	}

	if err := a.DB.Delete(&note).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting note")
	}

	return nil
}

func (a *App) getNote(noteID int) (database.Note, error) {
	var note database.Note
	err := a.DB.Where("id = ?", noteID).First(&note).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Note{}, ErrNotFound
	}
	if err != nil {
		return database.Note{}, pkgErrors.Wrap(err, "finding note")
	}

	return note, nil
}

// GetNote retrieves the note with the given id for the given viewer. The
// viewer may be nil to represent an anonymous reader. Private notes are
// visible to their author only.
func (a *App) GetNote(viewer *database.User, noteID int) (database.Note, error) {
	var note database.Note
	err := a.DB.Preload("Author").Where("id = ?", noteID).First(&note).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Note{}, ErrNotFound
	}
	if err != nil {
		return database.Note{}, pkgErrors.Wrap(err, "finding note")
	}

	if !permissions.CanViewNote(viewer, note) {
		return database.Note{}, ErrForbidden
	}

	return note, nil
}

// ListNotesParams configures a public note listing
type ListNotesParams struct {
	Page    int
	PerPage int
	Search  string
	Tag     string
}

// NotePage is one page of a note listing
type NotePage struct {
	Notes   []database.Note
	Total   int64
	Page    int
	PerPage int
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultNotesPerPage
	}
	if perPage > maxNotesPerPage {
		perPage = maxNotesPerPage
	}

	return page, perPage
}

// ListNotes lists public notes, newest first, with optional search and tag
// filters
func (a *App) ListNotes(p ListNotesParams) (NotePage, error) {
	page, perPage := normalizePage(p.Page, p.PerPage)

	conn := a.DB.Model(&database.Note{}).Where("is_public = ?", true)
	conn = applyNoteFilters(conn, p.Search, p.Tag)

	var total int64
	if err := conn.Count(&total).Error; err != nil {
		return NotePage{}, pkgErrors.Wrap(err, "counting notes")
	}

	notes := []database.Note{}
	err := conn.Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&notes).Error
	if err != nil {
		return NotePage{}, pkgErrors.Wrap(err, "finding notes")
	}

	return NotePage{Notes: notes, Total: total, Page: page, PerPage: perPage}, nil
}

// ListUserNotes lists the notes owned by the given author, newest first.
// Private notes are included only when includePrivate is set; callers set it
// when the requester is the author.
func (a *App) ListUserNotes(authorID int, includePrivate bool, p ListNotesParams) (NotePage, error) {
	page, perPage := normalizePage(p.Page, p.PerPage)

	conn := a.DB.Model(&database.Note{}).Where("author_id = ?", authorID)
	if !includePrivate {
		conn = conn.Where("is_public = ?", true)
	}
	conn = applyNoteFilters(conn, p.Search, p.Tag)

	var total int64
	if err := conn.Count(&total).Error; err != nil {
		return NotePage{}, pkgErrors.Wrap(err, "counting notes")
	}

	notes := []database.Note{}
	err := conn.Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&notes).Error
	if err != nil {
		return NotePage{}, pkgErrors.Wrap(err, "finding notes")
	}

	return NotePage{Notes: notes, Total: total, Page: page, PerPage: perPage}, nil
}

func applyNoteFilters(conn *gorm.DB, search, tag string) *gorm.DB {
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		conn = conn.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}
	if tag != "" {
		// Tags are stored as a JSON array of strings. Matching the quoted
		// value keeps the filter portable across sqlite and postgres.
		conn = conn.Where("tags LIKE ?", "%"+`"`+tag+`"`+"%")
	}

	return conn
}
