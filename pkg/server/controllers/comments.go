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

package controllers

import (
	"net/http"

	"github.com/studyflow/studyflow/pkg/server/app"
	"github.com/studyflow/studyflow/pkg/server/context"
	"github.com/studyflow/studyflow/pkg/server/presenters"
)

// NewComments creates a new Comments controller.
func NewComments(app *app.App) *Comments {
	return &Comments{app: app}
}

// Comments is a comment controller.
type Comments struct {
	app *app.App
}

// Index handles GET /notes/{noteID}/comments
func (c *Comments) Index(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing note id")
		return
	}

	page, err := c.app.ListComments(noteID)
	if err != nil {
		handleJSONError(w, err, "listing comments")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentCommentPage(page))
}

// Count handles GET /notes/{noteID}/comments/count
func (c *Comments) Count(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing note id")
		return
	}

	count, err := c.app.CountComments(noteID)
	if err != nil {
		handleJSONError(w, err, "counting comments")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// CreateCommentForm is the payload for creating a comment
type CreateCommentForm struct {
	NoteID   int    `json:"note_id"`
	Content  string `json:"content"`
	ParentID *int   `json:"parent_id"`
}

// Create handles POST /comments
func (c *Comments) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form CreateCommentForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	comment, err := c.app.CreateComment(*user, form.NoteID, form.Content, form.ParentID)
	if err != nil {
		handleJSONError(w, err, "creating comment")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentComment(comment))
}

// UpdateCommentForm is the payload for updating a comment
type UpdateCommentForm struct {
	Content string `json:"content"`
}

// Update handles PATCH /comments/{commentID}
func (c *Comments) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	commentID, err := pathID(r, "commentID")
	if err != nil {
		handleJSONError(w, err, "parsing comment id")
		return
	}

	var form UpdateCommentForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	comment, err := c.app.UpdateComment(*user, commentID, form.Content)
	if err != nil {
		handleJSONError(w, err, "updating comment")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentComment(comment))
}

// Delete handles DELETE /comments/{commentID}
func (c *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	commentID, err := pathID(r, "commentID")
	if err != nil {
		handleJSONError(w, err, "parsing comment id")
		return
	}

	if err := c.app.DeleteComment(*user, commentID); err != nil {
		handleJSONError(w, err, "deleting comment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
