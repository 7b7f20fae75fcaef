package service

import "testing"

func TestEmailDomainAllowed(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		allowed []string
		want    bool
	}{
		{
			name:    "empty allow-list admits everything",
			email:   "anyone@example.com",
			allowed: nil,
			want:    true,
		},
		{
			name:    "matching domain",
			email:   "dev@acme.io",
			allowed: []string{"acme.io"},
			want:    true,
		},
		{
			name:    "non-matching domain",
			email:   "dev@other.io",
			allowed: []string{"acme.io"},
			want:    false,
		},
		{
			name:    "case insensitive domain match",
			email:   "dev@ACME.IO",
			allowed: []string{"acme.io"},
			want:    true,
		},
		{
			name:    "second entry matches",
			email:   "dev@beta.dev",
			allowed: []string{"acme.io", "beta.dev"},
			want:    true,
		},
		{
			name:    "subdomain does not match parent",
			email:   "dev@mail.acme.io",
			allowed: []string{"acme.io"},
			want:    false,
		},
		{
			name:    "address without at sign",
			email:   "not-an-email",
			allowed: []string{"acme.io"},
			want:    false,
		},
		{
			name:    "trailing at sign",
			email:   "dev@",
			allowed: []string{"acme.io"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmailDomainAllowed(tt.email, tt.allowed)
			if got != tt.want {
				t.Errorf("EmailDomainAllowed(%q, %v) = %v, want %v", tt.email, tt.allowed, got, tt.want)
			}
		})
	}
}
