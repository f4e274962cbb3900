package session

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

// Data URLs carry their media type inline: data:<mime>;base64,<payload>
var dataURLPattern = regexp.MustCompile(`^data:([^;,]+);base64,(.*)$`)

// decodePayload turns client-supplied file data into a canonical byte
// buffer. A data URL is decoded once at ingestion and its embedded media
// type returned alongside; anything else is stored as received with an
// empty media type. Fetch never has to re-parse the payload.
func decodePayload(data string) ([]byte, string, error) {
	m := dataURLPattern.FindStringSubmatch(data)
	if m == nil {
		return []byte(data), "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return raw, m[1], nil
}
