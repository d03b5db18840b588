package models

// LeadType categorizes the origin of a property lead.
type LeadType string

const (
	LeadTypeExpired        LeadType = "Expired"
	LeadTypeFSBO           LeadType = "FSBO"
	LeadTypePreForeclosure LeadType = "Pre-foreclosure"
)

// Valid reports whether t is one of the known lead types.
func (t LeadType) Valid() bool {
	switch t {
	case LeadTypeExpired, LeadTypeFSBO, LeadTypePreForeclosure:
		return true
	}
	return false
}

// LeadScoreValue is an AI-assigned lead temperature.
type LeadScoreValue string

const (
	ScoreHot  LeadScoreValue = "Hot"
	ScoreWarm LeadScoreValue = "Warm"
	ScoreCold LeadScoreValue = "Cold"
)

// Valid reports whether v is one of the three accepted score values.
func (v LeadScoreValue) Valid() bool {
	switch v {
	case ScoreHot, ScoreWarm, ScoreCold:
		return true
	}
	return false
}

// LeadScore pairs a score with its reason. A listing either has both or
// neither; the pair is carried as a single optional value so an orphaned
// reason cannot exist.
type LeadScore struct {
	Score  LeadScoreValue `json:"score"`
	Reason string         `json:"reason"`
}

// Valuation pairs an AI-estimated value with its reasoning, carried as a
// single optional value like LeadScore.
type Valuation struct {
	EstimatedValue float64 `json:"estimatedValue"`
	Reasoning      string  `json:"reasoning"`
}

// Listing is a property lead: the seed attributes plus the overlay-derived
// user-editable facets (favorite, notes, tags, AI score, AI valuation).
// The id prefix records the record's origin: seed_, user_ or csv_.
type Listing struct {
	ID                     string     `json:"id"`
	Address                string     `json:"address"`
	City                   string     `json:"city"`
	State                  string     `json:"state"`
	Zip                    string     `json:"zip"`
	Price                  float64    `json:"price"`
	Bedrooms               int        `json:"bedrooms"`
	Bathrooms              float64    `json:"bathrooms"`
	Sqft                   int        `json:"sqft"`
	LotSize                string     `json:"lotSize,omitempty"`
	PropertyType           string     `json:"propertyType"`
	DaysOnMarketPreviously int        `json:"daysOnMarketPreviously"`
	OriginalListDate       string     `json:"originalListDate,omitempty"`
	ExpirationDate         string     `json:"expirationDate,omitempty"`
	PreviousAgentName      string     `json:"previousAgentName,omitempty"`
	PreviousAgentBrokerage string     `json:"previousAgentBrokerage,omitempty"`
	ListingDescription     string     `json:"listingDescription,omitempty"`
	ImageURL               string     `json:"imageUrl,omitempty"`
	LeadType               LeadType   `json:"leadType"`
	YearBuilt              int        `json:"yearBuilt,omitempty"`
	HomeownerEmail         string     `json:"homeownerEmail,omitempty"`
	HomeownerPhone         string     `json:"homeownerPhone,omitempty"`
	IsFavorite             bool       `json:"isFavorite"`
	Notes                  string     `json:"notes"`
	Tags                   []string   `json:"tags"`
	AILeadScore            *LeadScore `json:"aiLeadScore,omitempty"`
	AIValuation            *Valuation `json:"aiValuation,omitempty"`
}

// ListingInput carries user-provided data for create and import flows.
// Numeric fields accept both JSON numbers and numeric strings, mirroring
// form and spreadsheet input.
type ListingInput struct {
	Address                string   `json:"address" validate:"required"`
	City                   string   `json:"city"`
	State                  string   `json:"state"`
	Zip                    string   `json:"zip"`
	Price                  Number   `json:"price"`
	Bedrooms               Number   `json:"bedrooms"`
	Bathrooms              Number   `json:"bathrooms"`
	Sqft                   Number   `json:"sqft"`
	LotSize                string   `json:"lotSize"`
	PropertyType           string   `json:"propertyType"`
	DaysOnMarketPreviously Number   `json:"daysOnMarketPreviously"`
	OriginalListDate       string   `json:"originalListDate"`
	ExpirationDate         string   `json:"expirationDate"`
	PreviousAgentName      string   `json:"previousAgentName"`
	PreviousAgentBrokerage string   `json:"previousAgentBrokerage"`
	ListingDescription     string   `json:"listingDescription"`
	ImageURL               string   `json:"imageUrl"`
	LeadType               LeadType `json:"leadType"`
	YearBuilt              Number   `json:"yearBuilt"`
	HomeownerEmail         string   `json:"homeownerEmail" validate:"omitempty,email"`
	HomeownerPhone         string   `json:"homeownerPhone"`
}

// LeadScoreInput carries a score update. Score arrives as a plain string so
// invalid values can be rejected with a validation error instead of a
// decode failure.
type LeadScoreInput struct {
	Score  string `json:"score" validate:"required"`
	Reason string `json:"reason"`
}

// ValuationInput carries a valuation update. A nil EstimatedValue means the
// field was absent and the update is rejected.
type ValuationInput struct {
	EstimatedValue *Number `json:"estimatedValue"`
	Reasoning      string  `json:"reasoning"`
}
