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

	"github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/assert"
	"github.com/studyflow/studyflow/pkg/server/database"
	"github.com/studyflow/studyflow/pkg/server/mailer"
	"github.com/studyflow/studyflow/pkg/server/testutils"
)

func TestGetSenderEmail(t *testing.T) {
	a := NewTest(t)
	a.Config.WebURL = "https://www.example.com"

	got, err := a.GetSenderEmail()
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, got, "noreply@www.example.com", "sender mismatch")
}

func TestSendWelcomeEmail(t *testing.T) {
	a := NewTest(t)
	backend := &testutils.MockEmailbackendImplementation{}
	a.EmailBackend = backend

	user := database.User{Name: "alice", Email: "alice@example.com"}
	if err := a.SendWelcomeEmail(user); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, len(backend.Emails), 1, "email count mismatch")
	assert.Equal(t, backend.Emails[0].TemplateType, mailer.EmailTypeWelcome, "template mismatch")
	assert.DeepEqual(t, backend.Emails[0].To, []string{"alice@example.com"}, "recipient mismatch")
}
