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
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pkgErrors "github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/server/ai"
	"github.com/studyflow/studyflow/pkg/server/database"
	"github.com/studyflow/studyflow/pkg/server/permissions"
	"gorm.io/gorm"
)

// summaryPayload is the stored envelope for a generated summary
type summaryPayload struct {
	Text string `json:"text"`
}

// cardsPayload is the stored envelope for generated flashcards
type cardsPayload struct {
	Cards []json.RawMessage `json:"cards"`
}

// questionsPayload is the stored envelope for generated quiz and short answer
// questions
type questionsPayload struct {
	Questions []json.RawMessage `json:"questions"`
}

// GenerateContent returns the study artifact of the given type for the given
// note. The note content is length-checked first, so a note that has grown
// past the limit fails even when a cached row exists. If an artifact was
// generated before, the most recent row is returned without calling the
// generator; otherwise a new artifact is generated, stored, and returned.
// The second return value reports whether the result came from the cache.
//
// Two concurrent calls for the same missing pair can both reach the
// generator and insert two rows. Reads always pick the most recent row, so
// the duplicate is wasted work, not an inconsistency.
func (a *App) GenerateContent(ctx context.Context, noteID int, contentType string) (database.GeneratedContent, bool, error) {
	if !database.ValidContentType(contentType) {
		return database.GeneratedContent{}, false, NewValidationError(fmt.Sprintf("Unknown content type '%s'", contentType))
	}

	note, err := a.getNote(noteID)
	if err != nil {
		return database.GeneratedContent{}, false, err
	}

	if len(note.Content) == 0 {
		return database.GeneratedContent{}, false, NewValidationError("Note content is empty")
	}
	if max := a.Config.GenerationMaxContentLen; max > 0 && len(note.Content) > max {
		return database.GeneratedContent{}, false, NewValidationError(fmt.Sprintf("Note content exceeds the %d character generation limit", max))
	}

	if cached, err := a.GetLatestGenerated(noteID, contentType); err == nil {
		return cached, true, nil
	} else if !errors.Is(err, ErrNotFound) {
		return database.GeneratedContent{}, false, err
	}

	if a.Generator == nil {
		return database.GeneratedContent{}, false, ErrGenerationNotConfigured
	}

	prompt, ok := ai.PromptForType(contentType, note.Content)
	if !ok {
		return database.GeneratedContent{}, false, NewValidationError(fmt.Sprintf("Unknown content type '%s'", contentType))
	}

	raw, err := a.Generator.Generate(ctx, prompt.User, prompt.System)
	if err != nil {
		return database.GeneratedContent{}, false, pkgErrors.Wrap(err, "generating content")
	}

	payload, err := buildPayload(contentType, raw)
	if err != nil {
		return database.GeneratedContent{}, false, err
	}

	content := database.GeneratedContent{
		NoteID:  noteID,
		Type:    contentType,
		Content: payload,
	}
	if err := a.DB.Create(&content).Error; err != nil {
		return database.GeneratedContent{}, false, pkgErrors.Wrap(err, "saving generated content")
	}

	return content, false, nil
}

// buildPayload wraps the raw generator output into the stored envelope for
// the given content type. Everything but a summary is parsed as a JSON array
// first; a payload is only stored if parsing succeeds.
func buildPayload(contentType, raw string) (database.JSON, error) {
	switch contentType {
	case database.ContentTypeSummary:
		b, err := json.Marshal(summaryPayload{Text: raw})
		if err != nil {
			return nil, pkgErrors.Wrap(err, "marshalling payload")
		}
		return database.JSON(b), nil
	case database.ContentTypeFlashcards:
		items, err := ai.ParseJSONArray(raw)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(cardsPayload{Cards: items})
		if err != nil {
			return nil, pkgErrors.Wrap(err, "marshalling payload")
		}
		return database.JSON(b), nil
	case database.ContentTypeQuiz, database.ContentTypeShortAnswer:
		items, err := ai.ParseJSONArray(raw)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(questionsPayload{Questions: items})
		if err != nil {
			return nil, pkgErrors.Wrap(err, "marshalling payload")
		}
		return database.JSON(b), nil
	}

	return nil, NewValidationError(fmt.Sprintf("Unknown content type '%s'", contentType))
}

// GetLatestGenerated returns the most recent generated artifact of the given
// type for the given note
func (a *App) GetLatestGenerated(noteID int, contentType string) (database.GeneratedContent, error) {
	var content database.GeneratedContent
	err := a.DB.Where("note_id = ? AND type = ?", noteID, contentType).
		Order("created_at DESC, id DESC").
		First(&content).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.GeneratedContent{}, ErrNotFound
	}
	if err != nil {
		return database.GeneratedContent{}, pkgErrors.Wrap(err, "finding generated content")
	}

	return content, nil
}

// ListGeneratedDescriptors returns the generated artifacts of a note,
// newest first, without loading their payloads. Used for the shallow
// descriptor list on the note detail read.
func (a *App) ListGeneratedDescriptors(noteID int) ([]database.GeneratedContent, error) {
	contents := []database.GeneratedContent{}
	err := a.DB.Select("id, note_id, type, created_at").
		Where("note_id = ?", noteID).
		Order("created_at DESC, id DESC").
		Find(&contents).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding generated contents")
	}

	return contents, nil
}

// GenerationHistory lists every generated artifact of a note, newest first,
// optionally filtered by type. Private notes expose their history to the
// author only.
func (a *App) GenerationHistory(viewer *database.User, noteID int, contentType string) ([]database.GeneratedContent, error) {
	note, err := a.getNote(noteID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanViewNote(viewer, note) {
		return nil, ErrForbidden
	}

	conn := a.DB.Where("note_id = ?", noteID)
	if contentType != "" {
		if !database.ValidContentType(contentType) {
			return nil, NewValidationError(fmt.Sprintf("Unknown content type '%s'", contentType))
		}
		conn = conn.Where("type = ?", contentType)
	}

	contents := []database.GeneratedContent{}
	if err := conn.Order("created_at DESC, id DESC").Find(&contents).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding generated contents")
	}

	return contents, nil
}

// DeleteGeneratedContent deletes a generated artifact on behalf of the given
// user. Only the owning note's author may delete it. The next generation
// request for the pair regenerates from scratch, or falls back to the
// previous row if one remains.
func (a *App) DeleteGeneratedContent(user database.User, contentID int) error {
	var content database.GeneratedContent
	err := a.DB.Where("id = ?", contentID).First(&content).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return pkgErrors.Wrap(err, "finding generated content")
	}

	note, err := a.getNote(content.NoteID)
	if err != nil {
		return err
	}
	if !permissions.CanMutateNote(&user, note) {
		return ErrForbidden
	}

	if err := a.DB.Delete(&content).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting generated content")
	}

	return nil
}

// GradeShortAnswer evaluates a student's answer to a short answer question.
// Nothing is persisted.
func (a *App) GradeShortAnswer(ctx context.Context, question, rubric, modelAnswer, studentAnswer string) (ai.GradeResult, error) {
	if question == "" {
		return ai.GradeResult{}, NewValidationError("Question is required")
	}
	if studentAnswer == "" {
		return ai.GradeResult{}, NewValidationError("Answer is required")
	}

	if a.Generator == nil {
		return ai.GradeResult{}, ErrGenerationNotConfigured
	}

	prompt := ai.GradePrompt(question, rubric, modelAnswer, studentAnswer)

	raw, err := a.Generator.Generate(ctx, prompt.User, prompt.System)
	if err != nil {
		return ai.GradeResult{}, pkgErrors.Wrap(err, "grading answer")
	}

	result, err := ai.ParseGrade(raw)
	if err != nil {
		return ai.GradeResult{}, err
	}

	return result, nil
}
