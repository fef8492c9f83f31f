package server

import (
	"errors"

	"github.com/goccy/go-json"
)

// jsonCodec replaces connect's protojson codec so plain Go structs can be
// used as request and response messages. It registers under "json", which
// serves application/json for the Connect protocol.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("zero-length payload is not a valid JSON object")
	}
	return json.Unmarshal(data, v)
}
