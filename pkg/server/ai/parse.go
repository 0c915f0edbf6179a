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

package ai

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidResponse is an error for generator output that cannot be parsed
// into the expected shape, or that parses to an empty result
var ErrInvalidResponse = errors.New("invalid response format from generator")

// StripCodeFence removes markdown code fence markers from the given text.
// The generator is instructed to emit bare JSON but occasionally wraps it in
// a fenced block.
func StripCodeFence(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	return strings.TrimSpace(text)
}

// ParseJSONArray parses the generator output into a non-empty JSON array.
// It strips an optional code fence first.
func ParseJSONArray(text string) ([]json.RawMessage, error) {
	clean := StripCodeFence(text)

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, errors.Wrap(ErrInvalidResponse, err.Error())
	}
	if len(items) == 0 {
		return nil, errors.Wrap(ErrInvalidResponse, "empty array")
	}

	return items, nil
}

// GradeResult is the result of grading a short answer
type GradeResult struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Suggestions string `json:"suggestions"`
}

// ParseGrade parses the generator output of a grading call
func ParseGrade(text string) (GradeResult, error) {
	clean := StripCodeFence(text)

	var result GradeResult
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return GradeResult{}, errors.Wrap(ErrInvalidResponse, err.Error())
	}

	return result, nil
}
