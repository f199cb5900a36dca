package middleware

import (
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzhttp"
)

// Compress gzips responses of next. Requests whose path starts with one of
// skip go straight to next; WebSocket upgrades need the raw writer.
func Compress(next http.Handler, skip ...string) (http.Handler, error) {
	wrapper, err := gzhttp.NewWrapper(gzhttp.MinSize(1024))
	if err != nil {
		return nil, err
	}
	gz := wrapper(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range skip {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}
		gz.ServeHTTP(w, r)
	}), nil
}
