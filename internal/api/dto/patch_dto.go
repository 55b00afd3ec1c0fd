package dto

import (
	"encoding/json"
	"errors"
)

// PatchOp is one requested field change.
type PatchOp struct {
	PropName string `json:"propName"`
	Value    any    `json:"value"`
}

// ParsePatchBody accepts either an array of {propName, value} ops or a
// plain object of field: value pairs, the two shapes clients send.
func ParsePatchBody(body []byte) ([]PatchOp, error) {
	var ops []PatchOp
	if err := json.Unmarshal(body, &ops); err == nil {
		return ops, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		ops = make([]PatchOp, 0, len(obj))
		for propName, value := range obj {
			ops = append(ops, PatchOp{PropName: propName, Value: value})
		}
		return ops, nil
	}

	return nil, errors.New("request body must be an array of ops or an object")
}
