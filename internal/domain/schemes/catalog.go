package schemes

// Scheme is a government support program entry.
type Scheme struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Eligibility     string `json:"eligibility"`
	Benefit         string `json:"benefit"`
	ApplicationLink string `json:"application_link"`
}

// Insurance is a crop insurance catalog entry.
type Insurance struct {
	ID              string `json:"id"`
	Provider        string `json:"provider"`
	Scheme          string `json:"scheme"`
	Coverage        string `json:"coverage"`
	Premium         string `json:"premium"`
	ApplicationLink string `json:"application_link"`
}

// Static catalogs for the MVP. Sourced from public program listings, no
// per-user state involved.
func GovernmentSchemes() []Scheme {
	return []Scheme{
		{
			ID:              "1",
			Name:            "PM-KISAN Samman Nidhi",
			Description:     "Direct income support to farmers",
			Eligibility:     "Small and marginal farmers",
			Benefit:         "₹6000 per year",
			ApplicationLink: "https://pmkisan.gov.in",
		},
		{
			ID:              "2",
			Name:            "Soil Health Card Scheme",
			Description:     "Soil testing and nutrient management",
			Eligibility:     "All farmers",
			Benefit:         "Free soil testing",
			ApplicationLink: "https://soilhealth.dac.gov.in",
		},
		{
			ID:              "3",
			Name:            "Pradhan Mantri Fasal Bima Yojana",
			Description:     "Crop insurance scheme",
			Eligibility:     "All farmers",
			Benefit:         "Premium subsidy up to 90%",
			ApplicationLink: "https://pmfby.gov.in",
		},
	}
}

func CropInsurance() []Insurance {
	return []Insurance{
		{
			ID:              "1",
			Provider:        "Agricultural Insurance Company of India",
			Scheme:          "Modified National Agricultural Insurance Scheme",
			Coverage:        "Yield loss due to natural calamities",
			Premium:         "1.5% to 5% of sum insured",
			ApplicationLink: "https://aicofindia.com",
		},
		{
			ID:              "2",
			Provider:        "HDFC ERGO",
			Scheme:          "Crop Insurance",
			Coverage:        "Weather-based crop insurance",
			Premium:         "2% to 8% of sum insured",
			ApplicationLink: "https://hdfcergo.com",
		},
	}
}
