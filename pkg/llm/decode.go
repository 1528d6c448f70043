package llm

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
)

// decodeJSON unmarshals JSON data into v, attempting to repair malformed
// JSON first. Model output occasionally arrives with trailing commas or
// unescaped newlines; a syntax error triggers one repair-and-retry pass.
func decodeJSON(data []byte, v interface{}) (err error) {
	err = json.Unmarshal(data, v)
	if err == nil {
		return err
	}

	if _, ok := err.(*json.SyntaxError); ok {
		var fixed string
		fixed, err = jsonrepair.JSONRepair(string(data))
		if err != nil {
			return err
		}
		err = json.Unmarshal([]byte(fixed), v)
		return err
	}

	return err
}
