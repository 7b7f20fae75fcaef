package webhook

import (
	"testing"
)

func TestExtractReply(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bare json string",
			body: `"hello there"`,
			want: "hello there",
		},
		{
			name: "output field",
			body: `{"output":"hi from workflow"}`,
			want: "hi from workflow",
		},
		{
			name: "text field",
			body: `{"text":"text reply"}`,
			want: "text reply",
		},
		{
			name: "response field",
			body: `{"response":"resp reply"}`,
			want: "resp reply",
		},
		{
			name: "message field",
			body: `{"message":"msg reply"}`,
			want: "msg reply",
		},
		{
			name: "reply field",
			body: `{"reply":"nested reply"}`,
			want: "nested reply",
		},
		{
			name: "output wins over text",
			body: `{"text":"second","output":"first"}`,
			want: "first",
		},
		{
			name: "non-string known field is skipped",
			body: `{"output":{"deep":"value"},"text":"fallback"}`,
			want: "fallback",
		},
		{
			name: "unknown keys serialize whole object",
			body: `{"result":"something"}`,
			want: `{"result":"something"}`,
		},
		{
			name: "plain text passes through verbatim",
			body: `plain text answer`,
			want: "plain text answer",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
		{
			name: "whitespace only",
			body: "   \n\t ",
			want: "",
		},
		{
			name: "json array serializes whole",
			body: `["a","b"]`,
			want: `["a","b"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReply([]byte(tt.body))
			if got != tt.want {
				t.Errorf("ExtractReply(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
