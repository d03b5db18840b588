package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/jordanlanch/listingpro/pkg/models"
)

// GeneratorConfig configures seed catalogue generation
type GeneratorConfig struct {
	Count       int
	Seed        int64 // rand seed; the same value always yields the same catalogue
	LeadMix     map[models.LeadType]float64
	EmailChance float64 // 0.0-1.0 (probability of having a homeowner email)
	PhoneChance float64
}

// DefaultConfig returns the configuration used by the bundled catalogue.
func DefaultConfig(count int, seed int64) GeneratorConfig {
	return GeneratorConfig{
		Count: count,
		Seed:  seed,
		LeadMix: map[models.LeadType]float64{
			models.LeadTypeExpired:        0.6,
			models.LeadTypeFSBO:           0.25,
			models.LeadTypePreForeclosure: 0.15,
		},
		EmailChance: 0.7,
		PhoneChance: 0.8,
	}
}

var propertyTypes = []string{
	"Single Family", "Condo", "Townhouse", "Multi-Family", "Land",
}

var lotSizes = []string{
	"0.15 acres", "0.25 acres", "0.33 acres", "0.5 acres", "1 acre", "5,000 sqft", "7,500 sqft",
}

var brokerages = []string{
	"Keller Williams", "RE/MAX Advantage", "Coldwell Banker", "Century 21",
	"Berkshire Hathaway HomeServices", "eXp Realty", "Compass",
}

var descriptions = []string{
	"Charming home on a quiet street, minutes from schools and shopping.",
	"Spacious layout with an updated kitchen and a large backyard.",
	"Great bones, needs cosmetic updates. Priced to move.",
	"Move-in ready with fresh paint and new flooring throughout.",
	"Investor special. Strong rental comps in the area.",
	"Light-filled corner lot property with mature landscaping.",
}

// catalogueEpoch anchors the generated dates. Deriving them from the wall
// clock would change the catalogue between runs while the ids stayed fixed.
var catalogueEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generate produces a deterministic seed catalogue. Ids are seed_1..seed_N
// so overlays recorded against the catalogue survive restarts.
func Generate(config GeneratorConfig) []models.Listing {
	r := rand.New(rand.NewSource(config.Seed))
	faker := gofakeit.New(config.Seed)

	listings := make([]models.Listing, 0, config.Count)
	for i := 0; i < config.Count; i++ {
		id := fmt.Sprintf("seed_%d", i+1)
		leadType := pickLeadType(r, config.LeadMix)

		price := float64(150000 + r.Intn(700)*1000)
		sqft := 900 + r.Intn(3200)
		listed := catalogueEpoch.AddDate(0, 0, -(30 + r.Intn(300)))
		dom := 30 + r.Intn(150)
		expired := listed.AddDate(0, 0, dom)

		l := models.Listing{
			ID:                     id,
			Address:                faker.Street(),
			City:                   faker.City(),
			State:                  faker.StateAbr(),
			Zip:                    faker.Zip(),
			Price:                  price,
			Bedrooms:               2 + r.Intn(4),
			Bathrooms:              float64(1+r.Intn(3)) + float64(r.Intn(2))*0.5,
			Sqft:                   sqft,
			LotSize:                lotSizes[r.Intn(len(lotSizes))],
			PropertyType:           propertyTypes[r.Intn(len(propertyTypes))],
			DaysOnMarketPreviously: dom,
			OriginalListDate:       listed.Format("2006-01-02"),
			ExpirationDate:         expired.Format("2006-01-02"),
			ListingDescription:     descriptions[r.Intn(len(descriptions))],
			ImageURL:               fmt.Sprintf("https://picsum.photos/seed/%s/400/300", id),
			LeadType:               leadType,
			YearBuilt:              1950 + r.Intn(73),
			Tags:                   []string{},
		}

		if leadType == models.LeadTypeExpired {
			l.PreviousAgentName = faker.Name()
			l.PreviousAgentBrokerage = brokerages[r.Intn(len(brokerages))]
		}
		if r.Float64() < config.EmailChance {
			l.HomeownerEmail = faker.Email()
		}
		if r.Float64() < config.PhoneChance {
			l.HomeownerPhone = faker.Phone()
		}

		listings = append(listings, l)
	}
	return listings
}

func pickLeadType(r *rand.Rand, mix map[models.LeadType]float64) models.LeadType {
	roll := r.Float64()
	cumulative := 0.0
	for _, t := range []models.LeadType{models.LeadTypeExpired, models.LeadTypeFSBO, models.LeadTypePreForeclosure} {
		cumulative += mix[t]
		if roll < cumulative {
			return t
		}
	}
	return models.LeadTypeExpired
}
