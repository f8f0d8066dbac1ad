package csvexport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		headers []string
		want    string
	}{
		{
			name:    "header only",
			headers: []string{"A", "B"},
			want:    "A,B",
		},
		{
			name:    "plain values",
			records: []Record{{"A": "1", "B": "2"}, {"A": "3", "B": "4"}},
			headers: []string{"A", "B"},
			want:    "A,B\n1,2\n3,4",
		},
		{
			name:    "quotes and commas",
			records: []Record{{"Name": `Ravi "R", Jr`, "Note": "ok"}},
			headers: []string{"Name", "Note"},
			want:    "Name,Note\n\"Ravi \"\"R\"\", Jr\",ok",
		},
		{
			name:    "embedded newline",
			records: []Record{{"A": "line1\nline2"}},
			headers: []string{"A"},
			want:    "A\n\"line1\nline2\"",
		},
		{
			name:    "missing field renders empty",
			records: []Record{{"A": "x"}},
			headers: []string{"A", "B", "C"},
			want:    "A,B,C\nx,,",
		},
		{
			name:    "leading space is not quoted",
			records: []Record{{"A": " padded"}},
			headers: []string{"A"},
			want:    "A\n padded",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Encode(tt.records, tt.headers))
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "plain", Quote("plain"))
	assert.Equal(t, `"a,b"`, Quote("a,b"))
	assert.Equal(t, `"say ""hi"""`, Quote(`say "hi"`))
	assert.Equal(t, "", Quote(""))
}
