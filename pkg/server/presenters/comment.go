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
	"time"

	"github.com/studyflow/studyflow/pkg/server/app"
	"github.com/studyflow/studyflow/pkg/server/database"
)

// Comment is a result of PresentComment
type Comment struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Content   string    `json:"content"`
	NoteID    int       `json:"note_id"`
	ParentID  *int      `json:"parent_id"`
	Author    NoteUser  `json:"author"`
	Replies   []Comment `json:"replies,omitempty"`
}

// PresentComment presents comment
func PresentComment(comment database.Comment) Comment {
	return Comment{
		ID:        comment.ID,
		CreatedAt: FormatTS(comment.CreatedAt),
		UpdatedAt: FormatTS(comment.UpdatedAt),
		Content:   comment.Content,
		NoteID:    comment.NoteID,
		ParentID:  comment.ParentID,
		Author: NoteUser{
			ID:    comment.Author.ID,
			Name:  comment.Author.Name,
			Email: comment.Author.Email,
		},
	}
}

// CommentPage is a result of PresentCommentPage
type CommentPage struct {
	Comments []Comment `json:"comments"`
	Count    int64     `json:"count"`
}

// PresentCommentPage presents the comment listing of a note as one-level
// threads
func PresentCommentPage(page app.CommentPage) CommentPage {
	comments := []Comment{}
	for _, thread := range page.Threads {
		c := PresentComment(thread.Comment)

		for _, reply := range thread.Replies {
			c.Replies = append(c.Replies, PresentComment(reply))
		}

		comments = append(comments, c)
	}

	return CommentPage{
		Comments: comments,
		Count:    page.Count,
	}
}
