// filepath: internal/render/dataurl.go
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// Decoders for the image formats the forms embed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// decodeDataURI decodes an embedded raster image of the form
// "data:image/png;base64,....". Signatures and logos are stored this
// way in the documents.
func decodeDataURI(uri string) (image.Image, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("not a data URI")
	}

	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	meta, payload := uri[5:comma], uri[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URI encoding: %s", meta)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("undecodable image data: %w", err)
	}
	return img, nil
}
