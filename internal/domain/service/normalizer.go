package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"onthego/internal/domain/geo"
	"onthego/internal/domain/model"
)

// stateZipPattern matches the "CA 94103" / "CA 94103-1234" address segment.
var stateZipPattern = regexp.MustCompile(`^([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)

// PlaceNormalizer maps heterogeneous provider payloads into the canonical
// restaurant record. Never errors: missing optional fields get defaults, and
// records without resolvable coordinates are dropped by NormalizeAll.
type PlaceNormalizer struct{}

// NewPlaceNormalizer creates a normalizer.
func NewPlaceNormalizer() *PlaceNormalizer {
	return &PlaceNormalizer{}
}

// NormalizeAll normalizes a raw result set, dropping coordinate-less records.
func (n *PlaceNormalizer) NormalizeAll(raws []model.RawPlace, provider string, center *model.Location) []model.Restaurant {
	out := make([]model.Restaurant, 0, len(raws))
	for _, raw := range raws {
		if raw.Latitude == nil || raw.Longitude == nil {
			continue
		}
		r := n.Normalize(raw, provider, center)
		if !r.Coordinates.IsValid() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Normalize maps one raw payload into a Restaurant. center may be nil, in
// which case DistanceMeters is left unset.
func (n *PlaceNormalizer) Normalize(raw model.RawPlace, provider string, center *model.Location) model.Restaurant {
	r := model.Restaurant{
		ID:              normalizeID(raw.ID, provider),
		Name:            raw.Name,
		Rating:          clampRating(raw.Rating),
		ReviewCount:     maxInt(0, raw.ReviewCount),
		Price:           normalizePrice(raw),
		Address:         normalizeAddress(raw),
		Phone:           raw.Phone,
		Website:         raw.Website,
		ImageURL:        raw.ImageURL,
		OpenNow:         raw.OpenNow,
		Reservable:      raw.Reservable,
		Delivery:        raw.Delivery,
		Takeout:         raw.Takeout,
		DineIn:          raw.DineIn,
		GoodForGroups:   raw.GoodForGroups,
		LiveMusic:       raw.LiveMusic,
		ServesCocktails: raw.ServesCocktails,
		OutdoorSeating:  raw.OutdoorSeating,
		ServesCoffee:    raw.ServesCoffee,
		VisitDate:       raw.VisitDate,
	}

	if raw.Latitude != nil && raw.Longitude != nil {
		r.Coordinates = model.Location{Latitude: *raw.Latitude, Longitude: *raw.Longitude}
	}

	r.Categories = make([]model.Category, 0, len(raw.CategoryTitles))
	for _, title := range raw.CategoryTitles {
		if title == "" {
			continue
		}
		r.Categories = append(r.Categories, model.Category{Title: title})
	}

	r.Tags = DeriveTags(&r)

	if center != nil && center.IsValid() && r.Coordinates.IsValid() {
		d := geo.Distance(*center, r.Coordinates)
		r.DistanceMeters = &d
	}

	return r
}

// DeriveTags evaluates the fixed ambiance rule set against the record. Rules
// are independent; a record may receive zero, one, or many tags. Always
// re-evaluated, never cached.
func DeriveTags(r *model.Restaurant) []string {
	var tags []string
	if model.PriceRank(r.Price) >= 2 && r.Rating >= 4.2 && r.ReviewCount >= 100 {
		tags = append(tags, model.TagBusinessMeal)
	}
	if r.OutdoorSeating || r.ServesCoffee {
		tags = append(tags, model.TagChill)
	}
	if r.LiveMusic || (r.GoodForGroups && r.ServesCocktails) {
		tags = append(tags, model.TagFun)
	}
	if r.ReviewCount >= 50 && model.PriceRank(r.Price) <= 2 && r.Rating >= 4.0 {
		tags = append(tags, model.TagLocalSpots)
	}
	return tags
}

func normalizeID(id, provider string) string {
	if id == "" {
		return uuid.NewString()
	}
	if provider == "" {
		return id
	}
	return provider + ":" + id
}

// normalizePrice prefers a direct "$"-tier, then the provider's ordinal price
// level. Unrecognized values degrade to unknown.
func normalizePrice(raw model.RawPlace) string {
	switch raw.Price {
	case model.PriceCheap, model.PriceMid, model.PriceUpper, model.PriceTop:
		return raw.Price
	}
	if raw.PriceLevel != nil {
		switch *raw.PriceLevel {
		case 1:
			return model.PriceCheap
		case 2:
			return model.PriceMid
		case 3:
			return model.PriceUpper
		case 4:
			return model.PriceTop
		}
	}
	return model.PriceUnknown
}

// normalizeAddress uses discrete fields when present, otherwise parses the
// formatted address: first comma segment is the street line, second the city,
// third is matched against a state+zip pattern. Malformed input degrades to
// empty fields, never an error.
func normalizeAddress(raw model.RawPlace) model.Address {
	addr := model.Address{
		Street: raw.Street,
		City:   raw.City,
		State:  raw.State,
		Zip:    raw.Zip,
	}
	if addr.Street != "" || addr.City != "" {
		return addr
	}
	if raw.FormattedAddress == "" {
		return addr
	}

	segments := strings.Split(raw.FormattedAddress, ",")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	if len(segments) > 0 {
		addr.Street = segments[0]
	}
	if len(segments) > 1 {
		addr.City = segments[1]
	}
	if len(segments) > 2 {
		if m := stateZipPattern.FindStringSubmatch(segments[2]); m != nil {
			addr.State = m[1]
			addr.Zip = m[2]
		}
	}
	return addr
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
