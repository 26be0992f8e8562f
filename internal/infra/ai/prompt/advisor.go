package prompt

import (
	"encoding/json"
	"fmt"
)

// GetSystemPrompt frames the advisory persona. Downstream consumers render
// the response as-is, so the persona and the seven-section structure below
// are part of the API contract.
func GetSystemPrompt() string {
	return "You are an expert agricultural advisor specializing in Indian farming. " +
		"Analyze soil conditions and provide specific crop recommendations suitable " +
		"for Indian climate and farming practices."
}

// GetUserPrompt builds the advisory prompt for one soil sample. When no
// description is given but an image is attached, the description slot carries
// a literal marker so the advisor knows to read the image instead.
func GetUserPrompt(location, description string, hasImage bool) string {
	if location == "" {
		location = "India"
	}
	if description == "" {
		if hasImage {
			description = "Image provided"
		} else {
			description = "No description provided"
		}
	}

	return fmt.Sprintf(`Analyze this soil sample and provide comprehensive farming advice:

Location: %s
Soil Description: %s

Please provide:
1. Soil type identification
2. Soil health assessment
3. Recommended crops suitable for this soil type
4. Fertilizer recommendations
5. Best planting season
6. Water requirements
7. Expected yield estimates

Focus on crops commonly grown in India and provide practical, actionable advice for farmers.`,
		location, description)
}

// FormatLocation renders an unstructured location object for the prompt.
func FormatLocation(location map[string]any) string {
	if len(location) == 0 {
		return ""
	}
	b, err := json.Marshal(location)
	if err != nil {
		return ""
	}
	return string(b)
}

// FallbackAdvisory is served whenever the live advisory path fails. It keeps
// the same seven-section shape the clients expect.
const FallbackAdvisory = `Based on the soil sample analysis:

**Soil Type**: Alluvial soil (common in Indian plains)

**Soil Health**: Good fertility with adequate organic matter

**Recommended Crops**:
- Rice (Kharif season)
- Wheat (Rabi season)
- Sugarcane (year-round)
- Vegetables: Tomato, Onion, Potato

**Fertilizer Recommendations**:
- NPK (10:26:26) - 2 bags per acre
- Organic compost - 5 tons per acre
- Micronutrients as needed

**Best Planting Season**:
- Kharif: June-July (Monsoon)
- Rabi: October-November (Post-monsoon)

**Water Requirements**:
- Rice: 1200-1500mm annually
- Wheat: 450-650mm annually

**Expected Yield**:
- Rice: 40-50 quintals per acre
- Wheat: 35-45 quintals per acre`
