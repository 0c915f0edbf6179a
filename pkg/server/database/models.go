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

package database

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

const (
	// ContentTypeSummary is a generated summary
	ContentTypeSummary = "summary"
	// ContentTypeFlashcards is a generated set of flashcards
	ContentTypeFlashcards = "flashcards"
	// ContentTypeQuiz is a generated quiz
	ContentTypeQuiz = "quiz"
	// ContentTypeShortAnswer is a generated set of short answer questions
	ContentTypeShortAnswer = "shortanswer"
)

// ValidContentType checks if the given string is a known generated content type
func ValidContentType(t string) bool {
	switch t {
	case ContentTypeSummary, ContentTypeFlashcards, ContentTypeQuiz, ContentTypeShortAnswer:
		return true
	}

	return false
}

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// JSON is a column holding an arbitrary JSON document, stored as text
type JSON json.RawMessage

// Value implements driver.Valuer
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}

	return string(j), nil
}

// Scan implements sql.Scanner
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSON(v)
	default:
		return errors.Errorf("unsupported type %T for JSON column", value)
	}

	return nil
}

// MarshalJSON implements json.Marshaler
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}

	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler
func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}

// StringList is a column holding an ordered list of strings, stored as a JSON array
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}

	b, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling string list")
	}

	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.Errorf("unsupported type %T for StringList column", value)
	}

	return json.Unmarshal(b, l)
}

// User is a model for a user
type User struct {
	Model
	Name        string     `json:"name"`
	Email       string     `json:"email" gorm:"uniqueIndex"`
	Password    string     `json:"-"`
	LastLoginAt *time.Time `json:"-"`
	Notes       []Note     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments    []Comment  `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Sessions    []Session  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Note is a model for a study note
type Note struct {
	Model
	Title             string             `json:"title"`
	Content           string             `json:"content"`
	Tags              StringList         `json:"tags" gorm:"type:text"`
	// No column default: gorm omits zero values on insert, so a default
	// of true would overwrite an explicit false. CreateNote applies the
	// public-by-default rule instead.
	IsPublic          bool               `json:"is_public"`
	Attachments       JSON               `json:"attachments" gorm:"type:text"`
	AuthorID          int                `json:"author_id" gorm:"index"`
	Author            User               `json:"-" gorm:"foreignKey:AuthorID"`
	GeneratedContents []GeneratedContent `json:"-" gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
	Comments          []Comment          `json:"-" gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

// GeneratedContent is a model for an AI-generated study artifact derived from
// a note. Rows are immutable once created; the latest row per note and type
// is the active cached value.
type GeneratedContent struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	NoteID    int       `json:"note_id" gorm:"index:idx_generated_note_type"`
	Note      Note      `json:"-" gorm:"foreignKey:NoteID"`
	Type      string    `json:"type" gorm:"index:idx_generated_note_type"`
	Content   JSON      `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Comment is a model for a comment on a note. A nil ParentID means a
// top-level comment; otherwise the row is a reply to another comment on the
// same note.
type Comment struct {
	Model
	Content  string    `json:"content"`
	NoteID   int       `json:"note_id" gorm:"index:idx_comments_note_parent"`
	AuthorID int       `json:"author_id" gorm:"index"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID"`
	ParentID *int      `json:"parent_id" gorm:"index:idx_comments_note_parent"`
	Replies  []Comment `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

// Session represents a user session
type Session struct {
	Model
	UserID     int    `gorm:"index"`
	Key        string `gorm:"index"`
	LastUsedAt time.Time
	ExpiresAt  time.Time
}
