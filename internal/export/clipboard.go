package export

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
)

// CopyToClipboard writes the rendered listing to the terminal clipboard
// using OSC52. The writer defaults to stdout when nil.
func CopyToClipboard(rendered string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(rendered))
	_, err := fmt.Fprintf(w, "]52;c;%s", encoded)
	return err
}
