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
	"unicode/utf8"

	pkgErrors "github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/server/database"
	"github.com/studyflow/studyflow/pkg/server/permissions"
	"gorm.io/gorm"
)

const commentMaxLen = 2000

func validateCommentContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < 1 || n > commentMaxLen {
		return NewValidationError(fmt.Sprintf("Comment must be between 1 and %d characters", commentMaxLen))
	}

	return nil
}

// CommentThread is a top-level comment together with its replies
type CommentThread struct {
	Comment database.Comment
	Replies []database.Comment
}

// CommentPage is the full comment listing of a note
type CommentPage struct {
	Threads []CommentThread
	// Count is the number of top-level comments
	Count int64
}

// ListComments lists the comments of a note as one-level threads. Top-level
// comments come newest first; replies within a thread come oldest first.
func (a *App) ListComments(noteID int) (CommentPage, error) {
	note, err := a.getNote(noteID)
	if err != nil {
		return CommentPage{}, err
	}
	// Comments exist on public notes only. There is no author exception:
	// the author of a private note cannot list its comments either.
	if !note.IsPublic {
		return CommentPage{}, ErrForbidden
	}

	comments := []database.Comment{}
	err = a.DB.Preload("Author").
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return CommentPage{}, pkgErrors.Wrap(err, "finding comments")
	}

	replies := map[int][]database.Comment{}
	topLevel := []database.Comment{}
	for _, c := range comments {
		if c.ParentID == nil {
			topLevel = append(topLevel, c)
			continue
		}

		replies[*c.ParentID] = append(replies[*c.ParentID], c)
	}

	// Newest top-level comment first
	threads := make([]CommentThread, 0, len(topLevel))
	for i := len(topLevel) - 1; i >= 0; i-- {
		c := topLevel[i]
		threads = append(threads, CommentThread{
			Comment: c,
			Replies: replies[c.ID],
		})
	}

	return CommentPage{Threads: threads, Count: int64(len(topLevel))}, nil
}

// CreateComment creates a comment on a note on behalf of the given user. A
// non-nil parentID makes the comment a reply; the parent must belong to the
// same note.
func (a *App) CreateComment(user database.User, noteID int, content string, parentID *int) (database.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return database.Comment{}, err
	}

	note, err := a.getNote(noteID)
	if err != nil {
		return database.Comment{}, err
	}
	if !note.IsPublic {
		return database.Comment{}, ErrForbidden
	}

	if parentID != nil {
		parent, err := a.getComment(*parentID)
		if err != nil {
			return database.Comment{}, err
		}
		if parent.NoteID != noteID {
			return database.Comment{}, NewValidationError("Parent comment belongs to a different note")
		}
	}

	comment := database.Comment{
		Content:  content,
		NoteID:   noteID,
		AuthorID: user.ID,
		ParentID: parentID,
	}
	if err := a.DB.Create(&comment).Error; err != nil {
		return database.Comment{}, pkgErrors.Wrap(err, "saving comment")
	}

	comment.Author = user

	return comment, nil
}

func (a *App) getComment(commentID int) (database.Comment, error) {
	var comment database.Comment
	err := a.DB.Where("id = ?", commentID).First(&comment).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Comment{}, ErrNotFound
	}
	if err != nil {
		return database.Comment{}, pkgErrors.Wrap(err, "finding comment")
	}

	return comment, nil
}

// UpdateComment updates the content of a comment. Only the comment author may
// edit it.
func (a *App) UpdateComment(user database.User, commentID int, content string) (database.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return database.Comment{}, err
	}

	comment, err := a.getComment(commentID)
	if err != nil {
		return database.Comment{}, err
	}
	if !permissions.CanEditComment(&user, comment) {
		return database.Comment{}, ErrForbidden
	}

	comment.Content = content
	if err := a.DB.Save(&comment).Error; err != nil {
		return database.Comment{}, pkgErrors.Wrap(err, "saving comment")
	}

	return comment, nil
}

// DeleteComment deletes a comment on behalf of the given user. The comment
// author and the note author may delete it. Replies to the comment are
// removed by the cascade.
func (a *App) DeleteComment(user database.User, commentID int) error {
	comment, err := a.getComment(commentID)
	if err != nil {
		return err
	}

	note, err := a.getNote(comment.NoteID)
	if err != nil {
		return err
	}

	if !permissions.CanMutateComment(&user, comment, note) {
		return ErrForbidden
	}

	if err := a.DB.Delete(&comment).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting comment")
	}

	return nil
}

// CountComments counts all comments of a note, replies included
func (a *App) CountComments(noteID int) (int64, error) {
	var count int64
	err := a.DB.Model(&database.Comment{}).Where("note_id = ?", noteID).Count(&count).Error
	if err != nil {
		return 0, pkgErrors.Wrap(err, "counting comments")
	}

	return count, nil
}
