package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Code   string   `json:"code"`
	Tags   []string `json:"tags"`
	Absent *string  `json:"absent,omitempty"`
}

func TestPrinter(t *testing.T) {
	v := sample{Name: "shot.png", Count: 3, Code: "123", Tags: []string{"go", "yaml"}}
	fill := func(t table.Writer) {
		t.AppendHeader(table.Row{"Name", "Count"})
		t.AppendRow(table.Row{v.Name, v.Count})
	}

	tests := []struct {
		name    string
		format  string
		want    []string
		notWant []string
	}{
		{
			name:   "json",
			format: formatJSON,
			want:   []string{`"name": "shot.png"`, `"count": 3`, `"tags": [`},
		},
		{
			name:    "yaml uses json field names in order",
			format:  formatYAML,
			want:    []string{"name: shot.png\ncount: 3\n", "code: \"123\"", "tags:\n  - go\n  - yaml"},
			notWant: []string{"absent", "{", "["},
		},
		{
			name:   "table",
			format: formatTable,
			want:   []string{"NAME", "shot.png", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p, err := newPrinter(&buf, tt.format)
			require.NoError(t, err)
			require.NoError(t, p.print(v, fill))

			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestNewPrinter_InvalidFormat(t *testing.T) {
	_, err := newPrinter(&bytes.Buffer{}, "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table, json, yaml")
}

func TestWriteYAML_EmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, map[string]any{"items": []string{}}))
	assert.Equal(t, "items: []", strings.TrimSpace(buf.String()))
}
