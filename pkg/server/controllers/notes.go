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
	"encoding/json"
	"net/http"

	"github.com/studyflow/studyflow/pkg/server/app"
	"github.com/studyflow/studyflow/pkg/server/context"
	"github.com/studyflow/studyflow/pkg/server/database"
	"github.com/studyflow/studyflow/pkg/server/presenters"
)

// NewNotes creates a new Notes controller.
func NewNotes(app *app.App) *Notes {
	return &Notes{app: app}
}

// Notes is a note controller.
type Notes struct {
	app *app.App
}

// NoteListQuery is the query string for note listings
type NoteListQuery struct {
	Page    int    `schema:"page"`
	PerPage int    `schema:"per_page"`
	Search  string `schema:"q"`
	Tag     string `schema:"tag"`
}

func (q NoteListQuery) toParams() app.ListNotesParams {
	return app.ListNotesParams{
		Page:    q.Page,
		PerPage: q.PerPage,
		Search:  q.Search,
		Tag:     q.Tag,
	}
}

// Index handles GET /notes
func (n *Notes) Index(w http.ResponseWriter, r *http.Request) {
	var query NoteListQuery
	if err := parseQuery(r, &query); err != nil {
		handleJSONError(w, err, "parsing query")
		return
	}

	page, err := n.app.ListNotes(query.toParams())
	if err != nil {
		handleJSONError(w, err, "listing notes")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentNotePage(page.Notes, page.Total, page.Page, page.PerPage))
}

// UserNotes handles GET /users/{userID}/notes
func (n *Notes) UserNotes(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "userID")
	if err != nil {
		handleJSONError(w, err, "parsing user id")
		return
	}

	var query NoteListQuery
	if err := parseQuery(r, &query); err != nil {
		handleJSONError(w, err, "parsing query")
		return
	}

	if _, err := n.app.GetUserByID(authorID); err != nil {
		handleJSONError(w, err, "finding user")
		return
	}

	viewer := context.User(r.Context())
	includePrivate := viewer != nil && viewer.ID == authorID

	page, err := n.app.ListUserNotes(authorID, includePrivate, query.toParams())
	if err != nil {
		handleJSONError(w, err, "listing notes")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentNotePage(page.Notes, page.Total, page.Page, page.PerPage))
}

// Show handles GET /notes/{noteID}
func (n *Notes) Show(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing note id")
		return
	}

	note, err := n.app.GetNote(context.User(r.Context()), noteID)
	if err != nil {
		handleJSONError(w, err, "getting note")
		return
	}

	generated, err := n.app.ListGeneratedDescriptors(note.ID)
	if err != nil {
		handleJSONError(w, err, "listing generated contents")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentNoteDetail(note, generated))
}

// CreateNoteForm is the payload for creating a note
type CreateNoteForm struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Tags        []string        `json:"tags"`
	IsPublic    *bool           `json:"is_public"`
	Attachments json.RawMessage `json:"attachments"`
}

// Create handles POST /notes
func (n *Notes) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form CreateNoteForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	note, err := n.app.CreateNote(*user, app.CreateNoteParams{
		Title:       form.Title,
		Content:     form.Content,
		Tags:        form.Tags,
		IsPublic:    form.IsPublic,
		Attachments: database.JSON(form.Attachments),
	})
	if err != nil {
		handleJSONError(w, err, "creating note")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentNote(note))
}

// UpdateNoteForm is the payload for updating a note. Omitted fields are left
// unchanged.
type UpdateNoteForm struct {
	Title       *string          `json:"title"`
	Content     *string          `json:"content"`
	Tags        *[]string        `json:"tags"`
	IsPublic    *bool            `json:"is_public"`
	Attachments *json.RawMessage `json:"attachments"`
}

// Update handles PATCH /notes/{noteID}
func (n *Notes) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	noteID, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing note id")
		return
	}

	var form UpdateNoteForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	params := app.UpdateNoteParams{
		Title:    form.Title,
		Content:  form.Content,
		Tags:     form.Tags,
		IsPublic: form.IsPublic,
	}
	if form.Attachments != nil {
		attachments := database.JSON(*form.Attachments)
		params.Attachments = &attachments
	}

	note, err := n.app.UpdateNote(*user, noteID, params)
	if err != nil {
		handleJSONError(w, err, "updating note")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentNote(note))
}

// Delete handles DELETE /notes/{noteID}
func (n *Notes) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	noteID, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing note id")
		return
	}

	if err := n.app.DeleteNote(*user, noteID); err != nil {
		handleJSONError(w, err, "deleting note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
