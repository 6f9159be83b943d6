package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"orgstats/internal/platform/config"
	perr "orgstats/internal/platform/errors"
	"orgstats/internal/services/api/docs"
)

// SpecMutator edits the decoded document before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader is swapped by tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds m to the mutators applied on every doc.json request
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// defaultErrors are added to every operation that does not document them
var defaultErrors = []struct {
	code perr.ErrorCode
	msg  string
}{
	{perr.ErrorCodeValidation, "statsPeriod must be a relative period like 14d"},
	{perr.ErrorCodePanic, "panic recovered"},
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, docs.SwaggerInfo.BasePath)
		if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		ensureErrorSchema(spec)
		for _, d := range defaultErrors {
			addDefaultResponse(spec, d.code, d.msg)
		}
		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers lifts the document to OAS 3.0.3 and adds a servers entry for base
// the bundled UI does not render 3.1 yet
func ensureServers(spec map[string]any, base string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}
}

// ensureErrorSchema adds the envelope schema for errors when the document lacks it
func ensureErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "integer", "format": "int32"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": num,
			"status":      str,
			"code":        num,
			"error":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse documents code's HTTP status on every operation missing it
func addDefaultResponse(spec map[string]any, code perr.ErrorCode, msg string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	status := perr.HTTPStatusCode(code)
	key := http.StatusText(status)
	resp := map[string]any{
		"description": key,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      key,
					"code":        int(code),
					"error":       msg,
					"request_id":  "api-1/abc-000001",
				},
			},
		},
	}
	slot := strconv.Itoa(status)
	for _, node := range paths {
		ops, ok := node.(map[string]any)
		if !ok {
			continue
		}
		for _, op := range ops {
			o, ok := op.(map[string]any)
			if !ok {
				continue
			}
			rs := child(o, "responses")
			if _, ok := rs[slot]; !ok {
				rs[slot] = resp
			}
		}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
