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

	"github.com/gorilla/mux"
	"github.com/studyflow/studyflow/pkg/server/app"
	"github.com/studyflow/studyflow/pkg/server/context"
	"github.com/studyflow/studyflow/pkg/server/log"
	"github.com/studyflow/studyflow/pkg/server/presenters"
)

// NewAI creates a new AI controller.
func NewAI(app *app.App) *AI {
	return &AI{app: app}
}

// AI is a controller for generated study content.
type AI struct {
	app *app.App
}

// generationResponse is the envelope for generation responses. It extends
// the standard success envelope with the cache status.
type generationResponse struct {
	Success bool                        `json:"success"`
	Cached  bool                        `json:"cached"`
	Message string                      `json:"message"`
	Data    presenters.GeneratedContent `json:"data"`
}

func respondGenerated(w http.ResponseWriter, statusCode int, content presenters.GeneratedContent, cached bool) {
	message := "Content generated"
	if cached {
		message = "Content retrieved from cache"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := generationResponse{
		Success: true,
		Cached:  cached,
		Message: message,
		Data:    content,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// GenerateForm is the payload for generating content
type GenerateForm struct {
	NoteID int `json:"note_id"`
}

// Generate handles POST /generate/{contentType}
func (a *AI) Generate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contentType := vars["contentType"]

	var form GenerateForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	content, cached, err := a.app.GenerateContent(r.Context(), form.NoteID, contentType)
	if err != nil {
		handleJSONError(w, err, "generating content")
		return
	}

	statusCode := http.StatusCreated
	if cached {
		statusCode = http.StatusOK
	}

	respondGenerated(w, statusCode, presenters.PresentGeneratedContent(content), cached)
}

// GradeForm is the payload for grading a short answer
type GradeForm struct {
	Question    string `json:"question"`
	Rubric      string `json:"rubric"`
	ModelAnswer string `json:"model_answer"`
	Answer      string `json:"answer"`
}

// Grade handles POST /generate/grade
func (a *AI) Grade(w http.ResponseWriter, r *http.Request) {
	var form GradeForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	result, err := a.app.GradeShortAnswer(r.Context(), form.Question, form.Rubric, form.ModelAnswer, form.Answer)
	if err != nil {
		handleJSONError(w, err, "grading answer")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// History handles GET /notes/{noteID}/generated
func (a *AI) History(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing note id")
		return
	}

	contentType := r.URL.Query().Get("type")

	contents, err := a.app.GenerationHistory(context.User(r.Context()), noteID, contentType)
	if err != nil {
		handleJSONError(w, err, "listing generated contents")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentGeneratedContents(contents))
}

// Delete handles DELETE /generated/{contentID}
func (a *AI) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	contentID, err := pathID(r, "contentID")
	if err != nil {
		handleJSONError(w, err, "parsing content id")
		return
	}

	if err := a.app.DeleteGeneratedContent(*user, contentID); err != nil {
		handleJSONError(w, err, "deleting generated content")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
