// Package client embeds the browser script of the live page.
package client

import (
	"bytes"
	_ "embed"
	"hash/fnv"
	"net/http"
	"strconv"
	"time"
)

// ScriptName is the live client script served under the asset prefix.
const ScriptName = "folio.js"

//go:embed src/folio.js
var script []byte

var version = func() string {
	h := fnv.New64a()
	h.Write(script)
	return strconv.FormatUint(h.Sum64(), 36)
}()

// Script returns the embedded client script.
func Script() []byte {
	return script
}

// Version is a content hash of the script, used to bust browser caches
// when the binary changes.
func Version() string {
	return version
}

// Handler serves the script at /folio.js. Requests carrying the current
// version in ?v= may be cached for a year; everything else revalidates
// against the ETag.
func Handler() http.Handler {
	etag := `"` + version + `"`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+ScriptName {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("ETag", etag)
		if r.URL.Query().Get("v") == version {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		http.ServeContent(w, r, ScriptName, time.Time{}, bytes.NewReader(script))
	})
}
