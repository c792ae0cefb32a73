package places

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"onthego/internal/domain/model"
)

// DemoProvider fabricates plausible venues scattered around the requested
// center. It backs the app whenever the real place provider is unconfigured or
// failing, and it never errors.
type DemoProvider struct {
	seed []model.RawPlace
}

// NewDemoProvider creates the generator with its bundled venue set. Ids are
// assigned once, so they stay stable for the session.
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{seed: demoSeed()}
}

// Name identifies the provider.
func (p *DemoProvider) Name() string { return "demo" }

// scatterOffsets spread the seed venues within ~0.01 degrees of the center so
// they land on the map wherever the user searches.
var scatterOffsets = [...][2]float64{
	{0.005, 0.003}, {-0.003, 0.006}, {0.004, -0.005}, {-0.006, -0.002},
	{0.002, -0.007}, {0.006, 0.005}, {-0.004, -0.006}, {-0.002, 0.008},
	{0.007, -0.003}, {-0.005, -0.004}, {0.003, 0.007}, {-0.007, 0.002},
	{0.001, -0.008}, {-0.004, 0.005},
}

// Nearby relocates the bundled venues around the center.
func (p *DemoProvider) Nearby(_ context.Context, center model.Location, _ int, maxResults int, _ []string) ([]model.RawPlace, error) {
	out := make([]model.RawPlace, 0, len(p.seed))
	for i, raw := range p.seed {
		offset := scatterOffsets[i%len(scatterOffsets)]
		lat := center.Latitude + offset[0]
		lng := center.Longitude + offset[1]
		raw.Latitude = &lat
		raw.Longitude = &lng
		out = append(out, raw)
		if maxResults > 0 && len(out) >= maxResults {
			break
		}
	}
	return out, nil
}

// TextSearch matches the bundled venues by name/category; when nothing
// matches (the usual case for hotel lookups) it fabricates lodging results
// around the bias point.
func (p *DemoProvider) TextSearch(ctx context.Context, query string, bias model.Location) ([]model.RawPlace, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.RawPlace{}, nil
	}

	all, _ := p.Nearby(ctx, bias, 0, 0, nil)
	matched := make([]model.RawPlace, 0, 4)
	for _, raw := range all {
		hay := strings.ToLower(raw.Name + " " + strings.Join(raw.CategoryTitles, " "))
		if strings.Contains(hay, q) {
			matched = append(matched, raw)
		}
	}
	if len(matched) > 0 {
		return matched, nil
	}

	names := []string{
		"The " + titleCase(query) + " Grand",
		titleCase(query) + " Suites Downtown",
		"Hotel " + titleCase(query),
	}
	hotels := make([]model.RawPlace, 0, len(names))
	for i, name := range names {
		offset := scatterOffsets[(i*3)%len(scatterOffsets)]
		lat := bias.Latitude + offset[0]
		lng := bias.Longitude + offset[1]
		hotels = append(hotels, model.RawPlace{
			ID:             "demo-hotel-" + uuid.NewString(),
			Name:           name,
			Latitude:       &lat,
			Longitude:      &lng,
			CategoryTitles: []string{"Hotel", "Lodging"},
			Rating:         4.1 + 0.2*float64(i),
			ReviewCount:    120 + 85*i,
		})
	}
	return hotels, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func boolPtr(b bool) *bool { return &b }

// demoSeed is the bundled venue set. Ratings, review counts and signals are
// tuned so the scoring and filter surfaces all have something to bite on.
func demoSeed() []model.RawPlace {
	return []model.RawPlace{
		{
			ID: "demo-1", Name: "The Golden Spoon",
			CategoryTitles: []string{"Italian", "Pizza"},
			Rating:         4.5, ReviewCount: 328, Price: "$$",
			Street: "123 Market Street", City: "San Francisco", State: "CA", Zip: "94103",
			Phone: "(415) 555-0123", OpenNow: boolPtr(true),
			Reservable: true, DineIn: true, Takeout: true, GoodForGroups: true,
			VisitDate: "2024-11-15",
		},
		{
			ID: "demo-2", Name: "Sushi Paradise",
			CategoryTitles: []string{"Japanese", "Sushi"},
			Rating:         4.8, ReviewCount: 512, Price: "$$$",
			Street: "456 California Street", City: "San Francisco", State: "CA", Zip: "94108",
			Phone: "(415) 555-0456", OpenNow: boolPtr(true),
			Reservable: true, DineIn: true,
			VisitDate:  "2024-10-22",
		},
		{
			ID: "demo-3", Name: "Burger Heaven",
			CategoryTitles: []string{"American", "Burgers"},
			Rating:         4.2, ReviewCount: 245, Price: "$",
			Street: "789 Mission Street", City: "San Francisco", State: "CA", Zip: "94103",
			Phone: "(415) 555-0789", OpenNow: boolPtr(true),
			DineIn: true, Takeout: true, Delivery: true, GoodForGroups: true, OutdoorSeating: true,
		},
		{
			ID: "demo-4", Name: "Taco Fiesta",
			CategoryTitles: []string{"Mexican", "Tacos"},
			Rating:         4.6, ReviewCount: 421, Price: "$$",
			Street: "321 Valencia Street", City: "San Francisco", State: "CA", Zip: "94110",
			Phone: "(415) 555-0321", OpenNow: boolPtr(true),
			DineIn: true, Takeout: true, GoodForGroups: true, ServesCocktails: true,
			VisitDate: "2025-01-10",
		},
		{
			ID: "demo-5", Name: "Thai Delight",
			CategoryTitles: []string{"Thai", "Asian"},
			Rating:         4.4, ReviewCount: 298, Price: "$$",
			Street: "654 Geary Boulevard", City: "San Francisco", State: "CA", Zip: "94102",
			Phone: "(415) 555-0654", OpenNow: boolPtr(false),
			Reservable: true, DineIn: true, Delivery: true,
		},
		{
			ID: "demo-6", Name: "La Bella Vita",
			CategoryTitles: []string{"Italian", "Pasta"},
			Rating:         4.7, ReviewCount: 356, Price: "$$$",
			Street: "987 Columbus Avenue", City: "San Francisco", State: "CA", Zip: "94133",
			Phone: "(415) 555-0987", OpenNow: boolPtr(true),
			Reservable: true, DineIn: true, GoodForGroups: true, ServesCoffee: true,
			VisitDate: "2024-09-05",
		},
		{
			ID: "demo-7", Name: "The Steakhouse",
			CategoryTitles: []string{"Steakhouse", "American"},
			Rating:         4.9, ReviewCount: 678, Price: "$$$$",
			Street: "147 Powell Street", City: "San Francisco", State: "CA", Zip: "94102",
			Phone: "(415) 555-0147", OpenNow: boolPtr(true),
			Reservable: true, DineIn: true, GoodForGroups: true, ServesCocktails: true,
			VisitDate: "2024-12-03",
		},
		{
			ID: "demo-8", Name: "Pho Kitchen",
			CategoryTitles: []string{"Vietnamese", "Pho"},
			Rating:         4.3, ReviewCount: 189, Price: "$",
			Street: "258 Larkin Street", City: "San Francisco", State: "CA", Zip: "94102",
			Phone: "(415) 555-0258",
			DineIn: true, Takeout: true, Delivery: true,
		},
		{
			ID: "demo-9", Name: "Mediterranean Grill",
			CategoryTitles: []string{"Mediterranean", "Greek"},
			Rating:         4.5, ReviewCount: 267, Price: "$$",
			Street: "369 Fillmore Street", City: "San Francisco", State: "CA", Zip: "94117",
			Phone: "(415) 555-0369", OpenNow: boolPtr(true),
			Reservable: true, DineIn: true, OutdoorSeating: true,
		},
		{
			ID: "demo-10", Name: "Dim Sum Palace",
			CategoryTitles: []string{"Chinese", "Dim Sum"},
			Rating:         4.6, ReviewCount: 534, Price: "$$",
			Street: "741 Grant Avenue", City: "San Francisco", State: "CA", Zip: "94108",
			Phone: "(415) 555-0741", OpenNow: boolPtr(true),
			DineIn: true, Takeout: true, GoodForGroups: true,
			VisitDate: "2024-08-18",
		},
		{
			ID: "demo-11", Name: "Anchor Brewing Taproom",
			CategoryTitles: []string{"Brewery", "Craft Beer"},
			Rating:         4.4, ReviewCount: 312, Price: "$$",
			Street: "1705 Mariposa Street", City: "San Francisco", State: "CA", Zip: "94107",
			Phone: "(415) 555-0811", OpenNow: boolPtr(true),
			DineIn: true, GoodForGroups: true, OutdoorSeating: true, ServesCocktails: true,
		},
		{
			ID: "demo-12", Name: "The Bourbon Lounge",
			CategoryTitles: []string{"Bar", "Cocktail Bar"},
			Rating:         4.3, ReviewCount: 278, Price: "$$$",
			Street: "501 Jones Street", City: "San Francisco", State: "CA", Zip: "94102",
			Phone: "(415) 555-0812", OpenNow: boolPtr(true),
			DineIn: true, ServesCocktails: true, LiveMusic: true,
			VisitDate: "2024-11-14",
		},
		{
			ID: "demo-13", Name: "Temple Nightclub",
			CategoryTitles: []string{"Club", "Dance Club"},
			Rating:         4.0, ReviewCount: 445, Price: "$$$",
			Street: "540 Howard Street", City: "San Francisco", State: "CA", Zip: "94105",
			Phone: "(415) 555-0813", OpenNow: boolPtr(false),
			GoodForGroups: true, ServesCocktails: true, LiveMusic: true,
		},
		{
			ID: "demo-14", Name: "Cellarmaker Brewing",
			CategoryTitles: []string{"Brewery", "Gastropub"},
			Rating:         4.6, ReviewCount: 287, Price: "$$",
			Street: "1150 Howard Street", City: "San Francisco", State: "CA", Zip: "94103",
			Phone: "(415) 555-0814", OpenNow: boolPtr(true),
			DineIn: true, Takeout: true, ServesCocktails: true,
			VisitDate: "2025-01-20",
		},
	}
}
