package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AssetsWithCache serves dir under prefix with Cache-Control, Vary and
// ETag handling. ETags are computed once at startup.
func AssetsWithCache(dir, prefix string, maxAge time.Duration) http.Handler {
	etags := map[string]string{}
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		et, err := fileETag(path)
		if err != nil {
			return nil
		}
		if rel, err := filepath.Rel(dir, path); err == nil {
			etags["/"+filepath.ToSlash(rel)] = et
		}
		return nil
	})
	cacheControl := fmt.Sprintf("public, max-age=%d, stale-while-revalidate=86400", int(maxAge/time.Second))
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", cacheControl)
		if et := etags[strings.TrimPrefix(r.URL.Path, prefix)]; et != "" {
			w.Header().Set("ETag", et)
			if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

func fileETag(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`, nil
}
