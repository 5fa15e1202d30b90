package openapi

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OperationInfo summarizes an operation that accepts a request body.
type OperationInfo struct {
	ID      string `json:"id" yaml:"id"`
	Method  string `json:"method" yaml:"method"`
	Path    string `json:"path" yaml:"path"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Operations lists the operations with an operationId and a request body,
// sorted by ID.
func Operations(doc *openapi3.T) []OperationInfo {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	var out []OperationInfo
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" || requestSchema(op) == nil {
				continue
			}
			out = append(out, OperationInfo{
				ID:      op.OperationID,
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: op.Summary,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Components lists the component schema names, sorted.
func Components(doc *openapi3.T) []string {
	if doc == nil || doc.Components == nil {
		return nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
