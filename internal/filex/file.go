// Package filex contains small file helpers used by the client.
package filex

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
)

// DataURL reads the file at path and encodes it as a base64 data URL,
// sniffing the media type from the content. This is how images travel to the
// backend: inline in the request body, not as a separate upload.
func DataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	mediaType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data)), nil
}
