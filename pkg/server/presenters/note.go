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
	"encoding/json"
	"time"

	"github.com/studyflow/studyflow/pkg/server/database"
)

// Note is a result of PresentNote
type Note struct {
	ID          int             `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Tags        []string        `json:"tags"`
	IsPublic    bool            `json:"is_public"`
	Attachments json.RawMessage `json:"attachments,omitempty"`
	Author      NoteUser        `json:"author"`
}

// NoteUser is a nested author for PresentNote
type NoteUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PresentNote presents note
func PresentNote(note database.Note) Note {
	tags := []string(note.Tags)
	if tags == nil {
		tags = []string{}
	}

	return Note{
		ID:          note.ID,
		CreatedAt:   FormatTS(note.CreatedAt),
		UpdatedAt:   FormatTS(note.UpdatedAt),
		Title:       note.Title,
		Content:     note.Content,
		Tags:        tags,
		IsPublic:    note.IsPublic,
		Attachments: json.RawMessage(note.Attachments),
		Author: NoteUser{
			ID:    note.Author.ID,
			Name:  note.Author.Name,
			Email: note.Author.Email,
		},
	}
}

// PresentNotes presents notes
func PresentNotes(notes []database.Note) []Note {
	ret := []Note{}

	for _, note := range notes {
		p := PresentNote(note)
		ret = append(ret, p)
	}

	return ret
}

// NoteDetail is a result of PresentNoteDetail. It extends the note with
// shallow references to its generated study aids.
type NoteDetail struct {
	Note
	Generated []GeneratedDescriptor `json:"generated"`
}

// PresentNoteDetail presents a note with its generated content descriptors
func PresentNoteDetail(note database.Note, contents []database.GeneratedContent) NoteDetail {
	return NoteDetail{
		Note:      PresentNote(note),
		Generated: PresentGeneratedDescriptors(contents),
	}
}

// NotePage is a result of PresentNotePage
type NotePage struct {
	Notes   []Note `json:"notes"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// PresentNotePage presents a page of a note listing
func PresentNotePage(notes []database.Note, total int64, page, perPage int) NotePage {
	return NotePage{
		Notes:   PresentNotes(notes),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
