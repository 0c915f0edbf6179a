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
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/server/app"
	mw "github.com/studyflow/studyflow/pkg/server/middleware"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
}

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"POST", "/signin", c.Users.Signin, true},
		{"POST", "/signout", c.Users.Signout, true},
		{"GET", "/me", mw.Auth(a.DB, c.Users.Me), true},

		{"GET", "/notes", c.Notes.Index, true},
		{"POST", "/notes", mw.Auth(a.DB, c.Notes.Create), true},
		{"GET", "/notes/{noteID}", mw.OptionalAuth(a.DB, c.Notes.Show), true},
		{"PATCH", "/notes/{noteID}", mw.Auth(a.DB, c.Notes.Update), true},
		{"DELETE", "/notes/{noteID}", mw.Auth(a.DB, c.Notes.Delete), true},
		{"GET", "/users/{userID}/notes", mw.OptionalAuth(a.DB, c.Notes.UserNotes), true},

		{"GET", "/notes/{noteID}/comments", c.Comments.Index, true},
		{"GET", "/notes/{noteID}/comments/count", c.Comments.Count, true},
		{"POST", "/comments", mw.Auth(a.DB, c.Comments.Create), true},
		{"PATCH", "/comments/{commentID}", mw.Auth(a.DB, c.Comments.Update), true},
		{"DELETE", "/comments/{commentID}", mw.Auth(a.DB, c.Comments.Delete), true},

		{"POST", "/generate/grade", mw.Auth(a.DB, c.AI.Grade), true},
		{"POST", "/generate/{contentType}", mw.Auth(a.DB, c.AI.Generate), true},
		{"GET", "/notes/{noteID}/generated", mw.OptionalAuth(a.DB, c.AI.History), true},
		{"DELETE", "/generated/{contentID}", mw.Auth(a.DB, c.AI.Delete), true},
	}

	if !a.Config.DisableRegistration {
		ret = append(ret, Route{"POST", "/register", c.Users.Register, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	router.HandleFunc("/health", rc.Controllers.Health.Index).Methods("GET")

	return mw.Global(router), nil
}
