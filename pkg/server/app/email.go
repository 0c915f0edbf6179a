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
	"fmt"
	"net/url"

	pkgErrors "github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/server/database"
	"github.com/studyflow/studyflow/pkg/server/mailer"
)

// GetSenderEmail returns the from address for transactional emails, derived
// from the configured web url
func (a *App) GetSenderEmail() (string, error) {
	u, err := url.Parse(a.Config.WebURL)
	if err != nil {
		return "", pkgErrors.Wrap(err, "parsing web url")
	}

	return fmt.Sprintf("noreply@%s", u.Hostname()), nil
}

// SendWelcomeEmail sends a welcome email to the given user. A failure to
// send is not fatal to registration; callers log and move on.
func (a *App) SendWelcomeEmail(user database.User) error {
	from, err := a.GetSenderEmail()
	if err != nil {
		return pkgErrors.Wrap(err, "getting sender email")
	}

	data := mailer.WelcomeTmplData{
		Name:         user.Name,
		AccountEmail: user.Email,
		BaseURL:      a.Config.WebURL,
	}
	if err := a.EmailBackend.SendEmail(mailer.EmailTypeWelcome, from, []string{user.Email}, data); err != nil {
		return pkgErrors.Wrap(err, "sending email")
	}

	return nil
}
