package server

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// SwapMode is an hx-swap strategy.
type SwapMode string

const (
	SwapOuter SwapMode = "outerHTML"
	SwapNone  SwapMode = "none"
)

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// BuildTriggerHeader builds an HX-Trigger header value. Without data it is
// the bare event name; with data it is a JSON object keyed by the event.
func BuildTriggerHeader(trigger string, data map[string]any) string {
	if trigger == "" {
		return ""
	}
	if data == nil {
		return trigger
	}
	out, _ := json.Marshal(map[string]any{trigger: data})
	return string(out)
}

// WireAttrs builds the HTMX attributes that call an action. GET carries
// the props token in the query string, other methods carry it in hx-vals so
// it is posted alongside form fields.
func WireAttrs(path, method, token string) templ.Attributes {
	attrs := templ.Attributes{}
	if method == http.MethodGet || method == "" {
		url := path
		if token != "" {
			url = path + "?p=" + token
		}
		attrs["hx-get"] = url
		return attrs
	}

	switch method {
	case http.MethodPut:
		attrs["hx-put"] = path
	case http.MethodPatch:
		attrs["hx-patch"] = path
	case http.MethodDelete:
		attrs["hx-delete"] = path
	default:
		attrs["hx-post"] = path
	}
	if token != "" {
		data, _ := json.Marshal(map[string]string{"p": token})
		attrs["hx-vals"] = string(data)
	}
	return attrs
}
