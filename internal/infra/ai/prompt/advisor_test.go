package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserPrompt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		location    string
		description string
		hasImage    bool
		wantLoc     string
		wantDesc    string
	}{
		{
			name:        "all fields given",
			location:    `{"state":"Punjab"}`,
			description: "black cotton soil",
			wantLoc:     `Location: {"state":"Punjab"}`,
			wantDesc:    "Soil Description: black cotton soil",
		},
		{
			name:     "location defaults to India",
			wantLoc:  "Location: India",
			wantDesc: "Soil Description: No description provided",
		},
		{
			name:     "image stands in for missing description",
			hasImage: true,
			wantLoc:  "Location: India",
			wantDesc: "Soil Description: Image provided",
		},
		{
			name:        "description wins over image marker",
			description: "sandy loam",
			hasImage:    true,
			wantDesc:    "Soil Description: sandy loam",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := GetUserPrompt(tc.location, tc.description, tc.hasImage)
			if tc.wantLoc != "" {
				assert.Contains(t, got, tc.wantLoc)
			}
			assert.Contains(t, got, tc.wantDesc)
		})
	}
}

func TestGetUserPromptSections(t *testing.T) {
	t.Parallel()

	got := GetUserPrompt("", "", false)
	sections := []string{
		"1. Soil type identification",
		"2. Soil health assessment",
		"3. Recommended crops suitable for this soil type",
		"4. Fertilizer recommendations",
		"5. Best planting season",
		"6. Water requirements",
		"7. Expected yield estimates",
	}
	for _, s := range sections {
		assert.Contains(t, got, s)
	}
	assert.True(t, strings.Contains(got, "commonly grown in India"))
}

func TestFormatLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", FormatLocation(nil))
	assert.Equal(t, "", FormatLocation(map[string]any{}))
	assert.Equal(t, `{"city":"Pune"}`, FormatLocation(map[string]any{"city": "Pune"}))
}

func TestFallbackAdvisoryShape(t *testing.T) {
	t.Parallel()

	// the fallback must keep the seven-section shape clients render
	for _, heading := range []string{
		"**Soil Type**",
		"**Soil Health**",
		"**Recommended Crops**",
		"**Fertilizer Recommendations**",
		"**Best Planting Season**",
		"**Water Requirements**",
		"**Expected Yield**",
	} {
		assert.Contains(t, FallbackAdvisory, heading)
	}
}
