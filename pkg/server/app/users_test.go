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
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/assert"
	"github.com/studyflow/studyflow/pkg/server/database"
	"github.com/studyflow/studyflow/pkg/server/testutils"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := NewTest(t)

		if _, err := a.CreateUser("alice", "alice@example.com", "pass1234"); err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var userCount int64
		var userRecord database.User
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&userCount), "counting user")
		testutils.MustExec(t, a.DB.First(&userRecord), "finding user")

		assert.Equal(t, userCount, int64(1), "user count mismatch")
		assert.Equal(t, userRecord.Name, "alice", "user name mismatch")
		assert.Equal(t, userRecord.Email, "alice@example.com", "user email mismatch")
		if userRecord.LastLoginAt == nil {
			t.Error("expected LastLoginAt to be set")
		}

		passwordErr := bcrypt.CompareHashAndPassword([]byte(userRecord.Password), []byte("pass1234"))
		assert.Equal(t, passwordErr, nil, "Password mismatch")
	})

	t.Run("duplicate email", func(t *testing.T) {
		a := NewTest(t)

		testutils.SetupUserData(a.DB, "alice", "alice@example.com", "somepassword")

		_, err := a.CreateUser("alice2", "alice@example.com", "newpassword")
		assert.Equal(t, err, ErrDuplicateEmail, "error mismatch")

		var userCount int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&userCount), "counting user")
		assert.Equal(t, userCount, int64(1), "user count mismatch")
	})

	t.Run("missing name", func(t *testing.T) {
		a := NewTest(t)

		_, err := a.CreateUser("", "alice@example.com", "pass1234")
		assert.Equal(t, err, ErrNameRequired, "error mismatch")
	})

	t.Run("missing email", func(t *testing.T) {
		a := NewTest(t)

		_, err := a.CreateUser("alice", "", "pass1234")
		assert.Equal(t, err, ErrEmailRequired, "error mismatch")
	})

	t.Run("short password", func(t *testing.T) {
		a := NewTest(t)

		_, err := a.CreateUser("alice", "alice@example.com", "short")
		assert.Equal(t, err, ErrPasswordTooShort, "error mismatch")
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := NewTest(t)

		testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")

		user, err := a.Authenticate("alice@example.com", "pass1234")
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, user.Email, "alice@example.com", "user email mismatch")
	})

	t.Run("wrong password", func(t *testing.T) {
		a := NewTest(t)

		testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")

		_, err := a.Authenticate("alice@example.com", "wrongpassword")
		assert.Equal(t, err, ErrLoginInvalid, "error mismatch")
	})

	t.Run("nonexistent email", func(t *testing.T) {
		a := NewTest(t)

		_, err := a.Authenticate("bob@example.com", "pass1234")
		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})
}

func TestRemoveUser(t *testing.T) {
	t.Run("removes the user and the owned data", func(t *testing.T) {
		a := NewTest(t)

		alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		note := testutils.SetupNoteData(a.DB, alice, "alice note", "some note content here", true)
		testutils.SetupNoteData(a.DB, bob, "bob note", "some other content here", true)
		testutils.SetupSession(a.DB, alice)

		comment := database.Comment{Content: "a comment", NoteID: note.ID, AuthorID: alice.ID}
		testutils.MustExec(t, a.DB.Save(&comment), "preparing comment")

		if err := a.RemoveUser("alice@example.com"); err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var userCount, noteCount, commentCount, sessionCount int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&userCount), "counting users")
		testutils.MustExec(t, a.DB.Model(&database.Note{}).Count(&noteCount), "counting notes")
		testutils.MustExec(t, a.DB.Model(&database.Comment{}).Count(&commentCount), "counting comments")
		testutils.MustExec(t, a.DB.Model(&database.Session{}).Count(&sessionCount), "counting sessions")

		assert.Equal(t, userCount, int64(1), "user count mismatch")
		assert.Equal(t, noteCount, int64(1), "note count mismatch")
		assert.Equal(t, commentCount, int64(0), "comment count mismatch")
		assert.Equal(t, sessionCount, int64(0), "session count mismatch")
	})

	t.Run("nonexistent email", func(t *testing.T) {
		a := NewTest(t)

		err := a.RemoveUser("nobody@example.com")
		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})
}

func TestSignIn(t *testing.T) {
	a := NewTest(t)

	user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")

	session, err := a.SignIn(&user)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var sessionCount int64
	testutils.MustExec(t, a.DB.Model(&database.Session{}).Count(&sessionCount), "counting sessions")
	assert.Equal(t, sessionCount, int64(1), "session count mismatch")
	assert.NotEqual(t, session.Key, "", "session key mismatch")

	var userRecord database.User
	testutils.MustExec(t, a.DB.First(&userRecord, user.ID), "finding user")
	if userRecord.LastLoginAt == nil {
		t.Error("expected LastLoginAt to be set")
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	a := NewTest(t)

	user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")

	now := a.Clock.Now()
	expired := database.Session{UserID: user.ID, Key: "expired-key", ExpiresAt: now.Add(-time.Hour)}
	active := database.Session{UserID: user.ID, Key: "active-key", ExpiresAt: now.Add(time.Hour)}
	testutils.MustExec(t, a.DB.Save(&expired), "preparing expired session")
	testutils.MustExec(t, a.DB.Save(&active), "preparing active session")

	if err := a.DeleteExpiredSessions(); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var keys []string
	testutils.MustExec(t, a.DB.Model(&database.Session{}).Pluck("key", &keys), "finding sessions")
	assert.Equal(t, len(keys), 1, "session count mismatch")
	assert.Equal(t, keys[0], "active-key", "session key mismatch")
}
