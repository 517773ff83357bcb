package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// SystemData converts decoded JSON system values to the string form the
// comparators take. Null entries are dropped so they compare as absent.
// Numbers should be decoded as json.Number to keep long identifiers exact.
func SystemData(raw map[string]interface{}) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		switch t := v.(type) {
		case json.Number:
			out[k] = t.String()
			continue
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("system_data.%s must be a string, number or boolean", k)
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("system_data.%s: %v", k, err)
		}
		out[k] = s
	}
	return out, nil
}

// DecodeSystemData parses a JSON object of system values.
func DecodeSystemData(data []byte) (map[string]string, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, fmt.Errorf("system_data must be a JSON object")
	}
	return SystemData(raw)
}
