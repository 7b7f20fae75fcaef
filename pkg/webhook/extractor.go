package webhook

import (
	"bytes"
	"encoding/json"
)

// The upstream workflow engine is free to answer with a bare JSON
// string, an object using one of a few well-known keys, or plain text.
// Extraction is a fixed-priority probe: the first extractor that
// matches wins.

type extractor struct {
	name    string
	extract func(body []byte) (string, bool)
}

func bareString(body []byte) (string, bool) {
	var s string
	if err := json.Unmarshal(body, &s); err != nil {
		return "", false
	}
	return s, true
}

func objectField(field string) func(body []byte) (string, bool) {
	return func(body []byte) (string, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return "", false
		}
		raw, ok := obj[field]
		if !ok {
			return "", false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
}

var replyExtractors = []extractor{
	{name: "bare_string", extract: bareString},
	{name: "output_field", extract: objectField("output")},
	{name: "text_field", extract: objectField("text")},
	{name: "response_field", extract: objectField("response")},
	{name: "message_field", extract: objectField("message")},
	{name: "reply_field", extract: objectField("reply")},
}

// ExtractReply turns a raw webhook response body into assistant text.
// Non-JSON bodies are accepted verbatim; JSON objects with no known
// reply key are serialized whole rather than dropped.
func ExtractReply(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	for _, ex := range replyExtractors {
		if reply, ok := ex.extract(trimmed); ok {
			return reply
		}
	}

	if json.Valid(trimmed) {
		return string(trimmed)
	}
	return string(body)
}
