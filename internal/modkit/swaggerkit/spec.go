package swaggerkit

import (
	"net/http"
	"strconv"
	"strings"
)

const apiBase = "/api/v1"

// defaultErrors are added to every operation that does not declare them
var defaultErrors = []int{http.StatusBadRequest, http.StatusInternalServerError}

// decorate pins the doc to OAS 3.0.3 for the UI, sets the server base and
// gives every operation the error envelope responses
func decorate(spec map[string]any) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": apiBase}}
	}

	schemas := section(section(spec, "components"), "schemas")
	if _, ok := schemas["ErrorEnvelope"]; !ok {
		schemas["ErrorEnvelope"] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer"},
				"status":      map[string]any{"type": "string"},
				"code":        map[string]any{"type": "integer"},
				"error":       map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
			},
			"required": []any{"status_code", "status"},
		}
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			responses := section(op, "responses")
			for _, code := range defaultErrors {
				key := strconv.Itoa(code)
				if _, ok := responses[key]; ok {
					continue
				}
				responses[key] = map[string]any{
					"description": http.StatusText(code),
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{"$ref": "#/components/schemas/ErrorEnvelope"},
						},
					},
				}
			}
		}
	}
}

// section returns m[key] as an object, creating it when missing
func section(m map[string]any, key string) map[string]any {
	if s, ok := m[key].(map[string]any); ok {
		return s
	}
	s := map[string]any{}
	m[key] = s
	return s
}
