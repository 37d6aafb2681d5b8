package scoring

import (
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "object wrapped in prose",
			input: "Here is the analysis you requested:\n\n{\"a\":1}\n\nLet me know if you need more.",
			want:  `{"a":1}`,
		},
		{
			name:  "nested objects",
			input: `note {"a":{"b":{"c":3}}} trailing`,
			want:  `{"a":{"b":{"c":3}}}`,
		},
		{
			name:  "braces inside strings ignored",
			input: `{"summary":"uses {curly} notation","n":1}`,
			want:  `{"summary":"uses {curly} notation","n":1}`,
		},
		{
			name:  "escaped quote inside string",
			input: `{"summary":"she said \"ok}\"","n":1}`,
			want:  `{"summary":"she said \"ok}\"","n":1}`,
		},
		{
			name:  "first object wins",
			input: `{"a":1} {"b":2}`,
			want:  `{"a":1}`,
		},
		{
			name:    "no object",
			input:   "the policy looks fine to me",
			wantErr: true,
		},
		{
			name:    "unbalanced object",
			input:   `{"a":{"b":1}`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrNoJSONObject) {
					t.Fatalf("expected ErrNoJSONObject, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
