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

// Package permissions provides the authorization predicates shared across
// entry points
package permissions

import (
	"github.com/studyflow/studyflow/pkg/server/database"
)

// CanViewNote checks if the given user can view the given note. Public notes
// are visible to anyone, including guests; private notes only to their author.
func CanViewNote(user *database.User, note database.Note) bool {
	if note.IsPublic {
		return true
	}
	if user == nil {
		return false
	}

	return note.AuthorID == user.ID
}

// CanMutateNote checks if the given user can modify or delete the given note,
// or mutate content derived from it
func CanMutateNote(user *database.User, note database.Note) bool {
	if user == nil {
		return false
	}

	return note.AuthorID == user.ID
}

// CanMutateComment checks if the given user can delete the given comment.
// The comment's author and the owning note's author both qualify.
func CanMutateComment(user *database.User, comment database.Comment, note database.Note) bool {
	if user == nil {
		return false
	}

	return comment.AuthorID == user.ID || note.AuthorID == user.ID
}

// CanEditComment checks if the given user can edit the given comment's
// content. Unlike deletion, editing is reserved for the comment's author.
func CanEditComment(user *database.User, comment database.Comment) bool {
	if user == nil {
		return false
	}

	return comment.AuthorID == user.ID
}
