// Package assets embeds the default word list and the browser client.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed wordlist.txt web
var FS embed.FS

// WordList returns the raw embedded word list resource.
func WordList() (string, error) {
	b, err := FS.ReadFile("wordlist.txt")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Web returns the browser client rooted at web/.
func Web() fs.FS {
	sub, err := fs.Sub(FS, "web")
	if err != nil {
		// web is embedded at build time; a missing directory is a build error.
		panic(err)
	}
	return sub
}
