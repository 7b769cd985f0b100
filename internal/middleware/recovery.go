// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer turns a handler panic into a logged error and a JSON 500. When
// the handler had already started its response only the log entry is
// written. http.ErrAbortHandler is re-raised so net/http can drop the
// connection quietly.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw, ok := w.(*responseWriter)
		if !ok {
			rw = &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, isErr := rec.(error); isErr && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			slog.Error("handler panicked",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"committed", rw.written,
				"stack", string(debug.Stack()),
			)
			if rw.written {
				return
			}
			writeJSON(rw, http.StatusInternalServerError, map[string]string{
				"error": "Internal Server Error",
			})
		}()

		next.ServeHTTP(rw, r)
	})
}
