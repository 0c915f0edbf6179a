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

// GeneratedContent is a result of PresentGeneratedContent
type GeneratedContent struct {
	ID        int             `json:"id"`
	NoteID    int             `json:"note_id"`
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// PresentGeneratedContent presents generated content
func PresentGeneratedContent(content database.GeneratedContent) GeneratedContent {
	return GeneratedContent{
		ID:        content.ID,
		NoteID:    content.NoteID,
		Type:      content.Type,
		Content:   json.RawMessage(content.Content),
		CreatedAt: FormatTS(content.CreatedAt),
	}
}

// GeneratedDescriptor is a shallow reference to a generated artifact,
// embedded in the note detail response
type GeneratedDescriptor struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// PresentGeneratedDescriptors presents shallow generated content references
func PresentGeneratedDescriptors(contents []database.GeneratedContent) []GeneratedDescriptor {
	ret := []GeneratedDescriptor{}

	for _, content := range contents {
		ret = append(ret, GeneratedDescriptor{
			ID:        content.ID,
			Type:      content.Type,
			CreatedAt: FormatTS(content.CreatedAt),
		})
	}

	return ret
}

// PresentGeneratedContents presents generated contents
func PresentGeneratedContents(contents []database.GeneratedContent) []GeneratedContent {
	ret := []GeneratedContent{}

	for _, content := range contents {
		p := PresentGeneratedContent(content)
		ret = append(ret, p)
	}

	return ret
}
