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

	"github.com/studyflow/studyflow/pkg/clock"
	"github.com/studyflow/studyflow/pkg/server/config"
	"github.com/studyflow/studyflow/pkg/server/testutils"
)

// NewTest returns an app for a testing environment
func NewTest(t *testing.T) App {
	return App{
		DB:           testutils.InitMemoryDB(t),
		Clock:        clock.NewMock(),
		EmailBackend: &testutils.MockEmailbackendImplementation{},
		Config: config.Config{
			AppEnv:                  "TEST",
			WebURL:                  "http://127.0.0.1:3000",
			Port:                    "3000",
			GenerationMaxContentLen: 50000,
		},
	}
}
