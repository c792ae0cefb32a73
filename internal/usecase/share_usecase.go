package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"onthego/internal/application"
	"onthego/internal/domain/model"
	"onthego/internal/domain/service"
	"onthego/internal/share"
)

// ImportResult summarizes what an import did. Imported is false when the token
// could not be decoded; existing state is untouched in that case.
type ImportResult struct {
	Imported   bool   `json:"imported"`
	Added      int    `json:"added"`
	Total      int    `json:"total"`
	Recentered bool   `json:"recentered"`
	Label      string `json:"label,omitempty"`
}

// ShareUseCase turns the shortlist into a portable token and back.
type ShareUseCase interface {
	// Export snapshots the current shortlist, notes and search context into a
	// token suitable for a URL fragment.
	Export() (string, error)

	// Import merges a decoded token into the shortlist and re-centers the
	// search on the shared location. Undecodable tokens are a no-op.
	Import(ctx context.Context, token string) (*ImportResult, error)
}

type shareUseCase struct {
	userState *application.UserStateService
	search    RestaurantSearchUseCase
}

// NewShareUseCase creates the use case.
func NewShareUseCase(userState *application.UserStateService, search RestaurantSearchUseCase) ShareUseCase {
	return &shareUseCase{userState: userState, search: search}
}

func (s *shareUseCase) Export() (string, error) {
	ids, notes, err := s.userState.ShortlistIDs()
	if err != nil {
		return "", fmt.Errorf("collect shortlist: %w", err)
	}

	sc := DefaultCenter
	if _, current := s.search.Results(); current != nil {
		sc = *current
	}

	token, err := share.Encode(ids, notes, sc, service.DefaultPresetFor(time.Now()))
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *shareUseCase) Import(ctx context.Context, token string) (*ImportResult, error) {
	payload, err := share.Decode(token)
	if err != nil {
		if errors.Is(err, share.ErrDecode) {
			log.Printf("share import skipped: %v", err)
			return &ImportResult{Imported: false}, nil
		}
		return nil, err
	}

	items := make(map[string]string, len(payload.Items))
	for _, it := range payload.Items {
		items[it.ID] = it.Note
	}

	added, err := s.userState.MergeShortlist(items)
	if err != nil {
		return nil, fmt.Errorf("merge shared shortlist: %w", err)
	}

	result := &ImportResult{Imported: true, Added: added, Total: len(payload.Items)}

	sc := model.SearchContext{
		Latitude:   payload.Center.Latitude,
		Longitude:  payload.Center.Longitude,
		Label:      payload.Center.Label,
		SourceKind: model.SourceAddressSearch,
	}
	if sc.IsValid() {
		if _, err := s.search.SetCenter(ctx, sc); err != nil {
			log.Printf("re-center after import failed: %v", err)
		} else {
			result.Recentered = true
			result.Label = sc.Label
		}
	}
	return result, nil
}
