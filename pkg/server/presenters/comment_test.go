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

package presenters

import (
	"testing"
	"time"

	"github.com/studyflow/studyflow/pkg/assert"
	"github.com/studyflow/studyflow/pkg/server/app"
	"github.com/studyflow/studyflow/pkg/server/database"
)

func TestPresentComment(t *testing.T) {
	createdAt := time.Date(2025, 1, 15, 10, 30, 45, 123456789, time.UTC)
	parentID := 7

	input := database.Comment{
		Model: database.Model{
			ID:        12,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Content:  "Great explanation",
		NoteID:   3,
		AuthorID: 42,
		ParentID: &parentID,
		Author: database.User{
			Model: database.Model{ID: 42},
			Name:  "alice",
			Email: "alice@example.com",
		},
	}

	got := PresentComment(input)

	assert.Equal(t, got.ID, 12, "ID mismatch")
	assert.Equal(t, got.Content, "Great explanation", "Content mismatch")
	assert.Equal(t, got.NoteID, 3, "NoteID mismatch")
	assert.Equal(t, *got.ParentID, 7, "ParentID mismatch")
	assert.Equal(t, got.CreatedAt, FormatTS(createdAt), "CreatedAt mismatch")
	assert.Equal(t, got.Author.ID, 42, "Author ID mismatch")
	assert.Equal(t, got.Author.Name, "alice", "Author Name mismatch")
	assert.Equal(t, got.Author.Email, "alice@example.com", "Author Email mismatch")
}

func TestPresentCommentPage(t *testing.T) {
	topLevel := database.Comment{
		Model:   database.Model{ID: 1},
		Content: "top-level comment",
		NoteID:  3,
	}
	parentID := 1
	reply := database.Comment{
		Model:    database.Model{ID: 2},
		Content:  "a reply",
		NoteID:   3,
		ParentID: &parentID,
	}

	input := app.CommentPage{
		Threads: []app.CommentThread{
			{Comment: topLevel, Replies: []database.Comment{reply}},
		},
		Count: 1,
	}

	got := PresentCommentPage(input)

	assert.Equal(t, got.Count, int64(1), "Count mismatch")
	assert.Equal(t, len(got.Comments), 1, "thread count mismatch")
	assert.Equal(t, got.Comments[0].ID, 1, "thread ID mismatch")
	assert.Equal(t, len(got.Comments[0].Replies), 1, "reply count mismatch")
	assert.Equal(t, got.Comments[0].Replies[0].ID, 2, "reply ID mismatch")
}

func TestPresentNote(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	input := database.Note{
		Model: database.Model{
			ID:        5,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Title:    "Cell Biology",
		Content:  "Mitochondria are the powerhouse.",
		IsPublic: true,
		AuthorID: 42,
		Author: database.User{
			Model: database.Model{ID: 42},
			Name:  "alice",
			Email: "alice@example.com",
		},
	}

	got := PresentNote(input)

	assert.Equal(t, got.ID, 5, "ID mismatch")
	assert.Equal(t, got.Title, "Cell Biology", "Title mismatch")
	assert.Equal(t, got.IsPublic, true, "IsPublic mismatch")
	assert.Equal(t, got.Author.ID, 42, "Author ID mismatch")
	assert.DeepEqual(t, got.Tags, []string{}, "Tags mismatch")
}
