package predictor

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// unmarshalStrict decodes exactly one JSON value and rejects trailing data.
func unmarshalStrict(body []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
