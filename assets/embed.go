// assets/embed.go
//
// Embedded default wordlist, used when the server is started without a
// wordlist file.

package assets

import (
	"embed"
	"io"
)

//go:embed words.txt
var FS embed.FS

// OpenWords opens the embedded default wordlist. The caller closes it.
func OpenWords() (io.ReadCloser, error) {
	return FS.Open("words.txt")
}
