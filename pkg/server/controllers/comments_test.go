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
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/assert"
	"github.com/studyflow/studyflow/pkg/server/app"
	"github.com/studyflow/studyflow/pkg/server/database"
	"github.com/studyflow/studyflow/pkg/server/presenters"
	"github.com/studyflow/studyflow/pkg/server/testutils"
)

func TestCreateComment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		commenter := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)
		server := MustNewServer(t, &a)
		defer server.Close()

		payload := fmt.Sprintf(`{"note_id":%d,"content":"Great overview."}`, note.ID)
		req := testutils.MakeReq(server.URL, "POST", "/api/v1/comments", payload)
		res := testutils.HTTPAuthDo(t, a.DB, req, commenter)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "")

		var body struct {
			Data presenters.Comment `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}
		assert.Equal(t, body.Data.Content, "Great overview.", "content mismatch")
		assert.Equal(t, body.Data.Author.Name, "bob", "author mismatch")
		if body.Data.ParentID != nil {
			t.Errorf("parent_id mismatch. got %v, expected nil", *body.Data.ParentID)
		}
	})

	t.Run("private note", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Draft notes", "Rough notes, not ready to share.", false)
		server := MustNewServer(t, &a)
		defer server.Close()

		payload := fmt.Sprintf(`{"note_id":%d,"content":"Nice draft."}`, note.ID)
		req := testutils.MakeReq(server.URL, "POST", "/api/v1/comments", payload)
		res := testutils.HTTPAuthDo(t, a.DB, req, author)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "")
	})

	t.Run("guest", func(t *testing.T) {
		a := app.NewTest(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/comments", `{"note_id":1,"content":"Hello."}`)
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "")
	})
}

func TestListComments(t *testing.T) {
	a := app.NewTest(t)
	author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
	commenter := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
	note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)

	first, err := a.CreateComment(commenter, note.ID, "First comment.", nil)
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating comment"))
	}
	if _, err := a.CreateComment(author, note.ID, "A reply.", &first.ID); err != nil {
		t.Fatal(errors.Wrap(err, "creating reply"))
	}
	if _, err := a.CreateComment(commenter, note.ID, "Second comment.", nil); err != nil {
		t.Fatal(errors.Wrap(err, "creating comment"))
	}

	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/notes/%d/comments", note.ID), "")
	res := testutils.HTTPDo(t, req)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var body struct {
		Data presenters.CommentPage `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}

	assert.Equal(t, body.Data.Count, int64(2), "count mismatch")
	assert.Equal(t, len(body.Data.Comments), 2, "comment count mismatch")
	assert.Equal(t, body.Data.Comments[0].Content, "Second comment.", "ordering mismatch")
	assert.Equal(t, len(body.Data.Comments[1].Replies), 1, "reply count mismatch")
	assert.Equal(t, body.Data.Comments[1].Replies[0].Content, "A reply.", "reply content mismatch")
}

func TestCommentCount(t *testing.T) {
	a := app.NewTest(t)
	author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
	note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)

	first, err := a.CreateComment(author, note.ID, "First comment.", nil)
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating comment"))
	}
	if _, err := a.CreateComment(author, note.ID, "A reply.", &first.ID); err != nil {
		t.Fatal(errors.Wrap(err, "creating reply"))
	}

	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/notes/%d/comments/count", note.ID), "")
	res := testutils.HTTPDo(t, req)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var body struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}
	assert.Equal(t, body.Data.Count, int64(2), "count mismatch")
}

func TestUpdateComment(t *testing.T) {
	t.Run("other user", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		other := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)

		comment, err := a.CreateComment(author, note.ID, "Original comment.", nil)
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating comment"))
		}

		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "PATCH", fmt.Sprintf("/api/v1/comments/%d", comment.ID), `{"content":"Hijacked."}`)
		res := testutils.HTTPAuthDo(t, a.DB, req, other)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "")
	})

	t.Run("success", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)

		comment, err := a.CreateComment(author, note.ID, "Original comment.", nil)
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating comment"))
		}

		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "PATCH", fmt.Sprintf("/api/v1/comments/%d", comment.ID), `{"content":"Edited comment."}`)
		res := testutils.HTTPAuthDo(t, a.DB, req, author)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var updated database.Comment
		testutils.MustExec(t, a.DB.First(&updated, comment.ID), "finding comment")
		assert.Equal(t, updated.Content, "Edited comment.", "content mismatch")
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("note author deletes another user's comment", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		commenter := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)

		comment, err := a.CreateComment(commenter, note.ID, "A comment.", nil)
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating comment"))
		}

		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/v1/comments/%d", comment.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, author)

		assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.Comment{}).Count(&count), "counting comments")
		assert.Equal(t, count, int64(0), "comment count mismatch")
	})

	t.Run("unrelated user", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		other := testutils.SetupUserData(a.DB, "carol", "carol@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)

		comment, err := a.CreateComment(author, note.ID, "A comment.", nil)
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating comment"))
		}

		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/v1/comments/%d", comment.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, other)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "")
	})
}
