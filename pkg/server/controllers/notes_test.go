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
	"context"
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

func TestCreateNote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := app.NewTest(t)
		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/notes", `{"title":"Photosynthesis","content":"Plants convert light into chemical energy.","tags":["biology"]}`)
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "")

		var body struct {
			Data presenters.Note `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}

		assert.Equal(t, body.Data.Title, "Photosynthesis", "title mismatch")
		assert.Equal(t, body.Data.IsPublic, true, "is_public mismatch")
		assert.DeepEqual(t, body.Data.Tags, []string{"biology"}, "tags mismatch")
		assert.Equal(t, body.Data.Author.Name, "alice", "author mismatch")

		var noteCount int64
		testutils.MustExec(t, a.DB.Model(&database.Note{}).Count(&noteCount), "counting notes")
		assert.Equal(t, noteCount, int64(1), "note count mismatch")
	})

	t.Run("explicitly private", func(t *testing.T) {
		a := app.NewTest(t)
		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/notes", `{"title":"Private draft","content":"Not ready to share this yet.","is_public":false}`)
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "")

		var body struct {
			Data presenters.Note `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}
		assert.Equal(t, body.Data.IsPublic, false, "is_public mismatch")

		// The stored row must be private too
		var stored database.Note
		testutils.MustExec(t, a.DB.First(&stored, body.Data.ID), "finding note")
		assert.Equal(t, stored.IsPublic, false, "stored visibility mismatch")
	})

	t.Run("guest", func(t *testing.T) {
		a := app.NewTest(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/notes", `{"title":"Photosynthesis","content":"Plants convert light into chemical energy."}`)
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "")
	})

	t.Run("title too short", func(t *testing.T) {
		a := app.NewTest(t)
		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/notes", `{"title":"ab","content":"Plants convert light into chemical energy."}`)
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "")
	})
}

func TestGetNote(t *testing.T) {
	t.Run("public note as guest", func(t *testing.T) {
		a := app.NewTest(t)
		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, user, "Mitosis", "Cell division produces two daughter cells.", true)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/notes/%d", note.ID), "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var body struct {
			Data presenters.NoteDetail `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}
		assert.Equal(t, body.Data.Title, "Mitosis", "title mismatch")
		assert.Equal(t, len(body.Data.Generated), 0, "generated descriptor count mismatch")
	})

	t.Run("with generated content", func(t *testing.T) {
		a := app.NewTest(t)
		a.Generator = &testutils.StubGenerator{Response: "A short summary of the material."}
		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, user, "Mitosis", "Cell division produces two daughter cells.", true)
		server := MustNewServer(t, &a)
		defer server.Close()

		if _, _, err := a.GenerateContent(context.Background(), note.ID, "summary"); err != nil {
			t.Fatal(errors.Wrap(err, "generating content"))
		}

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/notes/%d", note.ID), "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var body struct {
			Data presenters.NoteDetail `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}
		assert.Equal(t, len(body.Data.Generated), 1, "generated descriptor count mismatch")
		assert.Equal(t, body.Data.Generated[0].Type, "summary", "descriptor type mismatch")
	})

	t.Run("private note as other user", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		viewer := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Draft notes", "Rough notes, not ready to share.", false)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/notes/%d", note.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, viewer)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "")
	})

	t.Run("private note as author", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Draft notes", "Rough notes, not ready to share.", false)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/notes/%d", note.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, author)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")
	})

	t.Run("nonexistent note", func(t *testing.T) {
		a := app.NewTest(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/api/v1/notes/999", "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "")
	})
}

func TestUpdateNote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "PATCH", fmt.Sprintf("/api/v1/notes/%d", note.ID), `{"title":"Mitosis phases","is_public":false}`)
		res := testutils.HTTPAuthDo(t, a.DB, req, author)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var updated database.Note
		testutils.MustExec(t, a.DB.First(&updated, note.ID), "finding note")
		assert.Equal(t, updated.Title, "Mitosis phases", "title mismatch")
		assert.Equal(t, updated.IsPublic, false, "is_public mismatch")
		assert.Equal(t, updated.Content, "Cell division produces two daughter cells.", "content mismatch")
	})

	t.Run("other user", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		other := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "PATCH", fmt.Sprintf("/api/v1/notes/%d", note.ID), `{"title":"Hijacked"}`)
		res := testutils.HTTPAuthDo(t, a.DB, req, other)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "")

		var unchanged database.Note
		testutils.MustExec(t, a.DB.First(&unchanged, note.ID), "finding note")
		assert.Equal(t, unchanged.Title, "Mitosis", "title mismatch")
	})
}

func TestDeleteNote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/v1/notes/%d", note.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, author)

		assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

		var noteCount int64
		testutils.MustExec(t, a.DB.Model(&database.Note{}).Count(&noteCount), "counting notes")
		assert.Equal(t, noteCount, int64(0), "note count mismatch")
	})

	t.Run("other user", func(t *testing.T) {
		a := app.NewTest(t)
		author := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		other := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, author, "Mitosis", "Cell division produces two daughter cells.", true)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/v1/notes/%d", note.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, other)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "")
	})
}

func TestListNotes(t *testing.T) {
	a := app.NewTest(t)
	alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
	bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
	testutils.SetupNoteData(a.DB, alice, "Mitosis", "Cell division produces two daughter cells.", true)
	testutils.SetupNoteData(a.DB, alice, "Private draft", "Rough notes, not ready to share.", false)
	testutils.SetupNoteData(a.DB, bob, "Photosynthesis", "Plants convert light into chemical energy.", true)
	server := MustNewServer(t, &a)
	defer server.Close()

	t.Run("public only", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/v1/notes", "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var body struct {
			Data presenters.NotePage `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}

		assert.Equal(t, body.Data.Total, int64(2), "total mismatch")
		assert.Equal(t, len(body.Data.Notes), 2, "note count mismatch")
		for _, n := range body.Data.Notes {
			assert.Equal(t, n.IsPublic, true, "is_public mismatch")
		}
	})

	t.Run("search", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/v1/notes?q=photo", "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var body struct {
			Data presenters.NotePage `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}

		assert.Equal(t, len(body.Data.Notes), 1, "note count mismatch")
		assert.Equal(t, body.Data.Notes[0].Title, "Photosynthesis", "title mismatch")
	})

	t.Run("pagination", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/v1/notes?page=2&per_page=1", "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var body struct {
			Data presenters.NotePage `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}

		assert.Equal(t, body.Data.Total, int64(2), "total mismatch")
		assert.Equal(t, len(body.Data.Notes), 1, "note count mismatch")
		assert.Equal(t, body.Data.Page, 2, "page mismatch")
		assert.Equal(t, body.Data.PerPage, 1, "per_page mismatch")
	})
}

func TestUserNotes(t *testing.T) {
	a := app.NewTest(t)
	alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
	bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
	testutils.SetupNoteData(a.DB, alice, "Mitosis", "Cell division produces two daughter cells.", true)
	testutils.SetupNoteData(a.DB, alice, "Private draft", "Rough notes, not ready to share.", false)
	server := MustNewServer(t, &a)
	defer server.Close()

	t.Run("as author", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/users/%d/notes", alice.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, alice)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var body struct {
			Data presenters.NotePage `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}
		assert.Equal(t, body.Data.Total, int64(2), "total mismatch")
	})

	t.Run("as other user", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/users/%d/notes", alice.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var body struct {
			Data presenters.NotePage `json:"data"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(errors.Wrap(err, "decoding payload"))
		}
		assert.Equal(t, body.Data.Total, int64(1), "total mismatch")
		assert.Equal(t, body.Data.Notes[0].Title, "Mitosis", "title mismatch")
	})

	t.Run("nonexistent user", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/v1/users/999/notes", "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "")
	})
}
