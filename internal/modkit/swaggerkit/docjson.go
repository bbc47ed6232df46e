package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"immersion/internal/core/normalize"
	"immersion/internal/platform/config"
	perr "immersion/internal/platform/errors"
)

//go:embed openapi.json
var openapi string

// docReader is a seam so tests can inject invalid JSON
var docReader = func() string { return openapi }

// errorResponse mirrors the runtime error envelope
var errorResponse = map[string]any{
	"type":        "object",
	"description": "Standard error response",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

func errorExample(status int, code perr.ErrorCode, msg, field string) map[string]any {
	ex := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"code":        int(code),
		"error":       msg,
		"request_id":  "579f33bf50b1/abc-000001",
	}
	if field != "" {
		ex["field"] = field
	}
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": ex,
			},
		},
	}
}

// defaults are added to every operation that does not document the status itself
var defaults = map[string]map[string]any{
	"400": errorExample(http.StatusBadRequest, perr.ErrorCodeValidation, normalize.ReasonAmountFormat, "amount"),
	"500": errorExample(http.StatusInternalServerError, perr.ErrorCodePanic, "internal error", ""),
}

// serveDocJSON serves the embedded OpenAPI document with the runtime details filled in
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		decorate(spec, config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
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

func decorate(spec map[string]any, titleSuffix string) {
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": "/api/v1"}}
	}
	if titleSuffix != "" {
		info := child(spec, "info")
		if title, ok := info["title"].(string); ok {
			info["title"] = title + " " + titleSuffix
		}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorResponse
	}

	for _, p := range child(spec, "paths") {
		methods, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range methods {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, resp := range defaults {
				if _, ok := resps[code]; !ok {
					resps[code] = resp
				}
			}
		}
	}
}
