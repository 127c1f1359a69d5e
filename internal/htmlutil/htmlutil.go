package htmlutil

import (
	"fmt"
	"html"
	"log"
	"net/http"
)

const errorPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%d %s</title><link rel="stylesheet" href="%s/style.css"></head>
<body><main class="error"><h1>%d %s</h1><p>%s</p><p><a href="%s/">Back to the directory</a></p></main></body>
</html>
`

func Error(w http.ResponseWriter, basePath, message string, code int) {
	log.Printf("!!! %d %s - %s", code, http.StatusText(code), message)
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	w.WriteHeader(code)
	fmt.Fprintf(w, errorPage, code, http.StatusText(code), basePath, code, http.StatusText(code), html.EscapeString(message), basePath)
}

func NotFoundHandler(basePath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)
		Error(w, basePath, "The requested page does not exist.", http.StatusNotFound)
	})
}
