package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantCriteria FilterCriteria
		wantText     string
		wantErr      bool
	}{
		{
			name:  "empty input",
			input: "",
		},
		{
			name:         "single field selection",
			input:        `type = "Banner"`,
			wantCriteria: FilterCriteria{Type: "Banner"},
		},
		{
			name:         "multiple fields ANDed",
			input:        `type = "Banner" AND creator = "alice" AND dateRange = "week"`,
			wantCriteria: FilterCriteria{Type: "Banner", Creator: "alice", DateRange: "week"},
		},
		{
			name:     "bare text term",
			input:    `"holiday"`,
			wantText: "holiday",
		},
		{
			name:         "fields mixed with text",
			input:        `type = "Banner" AND "holiday" AND "launch"`,
			wantCriteria: FilterCriteria{Type: "Banner"},
			wantText:     "holiday launch",
		},
		{
			name:         "camel-cased dimensions",
			input:        `contentType = "Blog" AND usageStatus = "Used" AND subService = "100"`,
			wantCriteria: FilterCriteria{ContentType: "Blog", UsageStatus: "Used", SubService: "100"},
		},
		{
			name:    "unknown field",
			input:   `color = "red"`,
			wantErr: true,
		},
		{
			name:    "unquoted value",
			input:   `type = Banner`,
			wantErr: true,
		},
		{
			name:    "dangling AND",
			input:   `type = "Banner" AND`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria, text, err := ParseQuery(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCriteria, criteria)
			assert.Equal(t, tt.wantText, text)
		})
	}
}
