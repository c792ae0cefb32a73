package application

import (
	"fmt"
	"sync"

	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
)

// Persisted key names. Each key is written atomically as a whole.
const (
	keyVisited   = "visited"
	keyNotes     = "notes"
	keyShortlist = "shortlist"
	keyProfile   = "profile"
	keySettings  = "settings"
)

// Profile is the user's account info.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Settings are the user-tunable search knobs.
type Settings struct {
	RadiusMeters int    `json:"radius_meters"`
	Provider     string `json:"provider"`
	Alerts       bool   `json:"alerts"`
}

// visitedRecord pairs the visit flag with the optional visit date.
type visitedRecord struct {
	Visited bool   `json:"visited"`
	Date    string `json:"date,omitempty"`
}

// UserStateService owns the per-user overlay state (visited set, notes,
// shortlist pins, profile, settings) behind the key-value store. All access is
// read-modify-write under one lock; the store guarantees per-key atomicity.
type UserStateService struct {
	store repository.KeyValueStore
	mu    sync.Mutex
}

// NewUserStateService creates the service over the given store.
func NewUserStateService(store repository.KeyValueStore) *UserStateService {
	return &UserStateService{store: store}
}

// SetVisited flags a venue as visited (or not) with an optional date.
func (s *UserStateService) SetVisited(id string, visited bool, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := map[string]visitedRecord{}
	if _, err := s.store.Get(keyVisited, &records); err != nil {
		return fmt.Errorf("load visited set: %w", err)
	}
	if visited {
		records[id] = visitedRecord{Visited: true, Date: date}
	} else {
		delete(records, id)
	}
	return s.store.Set(keyVisited, records)
}

// SetNote stores (or clears) the user's note for a venue.
func (s *UserStateService) SetNote(id, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := map[string]string{}
	if _, err := s.store.Get(keyNotes, &notes); err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	if note == "" {
		delete(notes, id)
	} else {
		notes[id] = note
	}
	return s.store.Set(keyNotes, notes)
}

// SetPinned adds or removes a venue from the shortlist.
func (s *UserStateService) SetPinned(id string, pinned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pins := map[string]bool{}
	if _, err := s.store.Get(keyShortlist, &pins); err != nil {
		return fmt.Errorf("load shortlist: %w", err)
	}
	if pinned {
		pins[id] = true
	} else {
		delete(pins, id)
	}
	return s.store.Set(keyShortlist, pins)
}

// Shortlist assembles the persisted shortlist entries (pin + note per id).
func (s *UserStateService) Shortlist() (map[string]model.ShortlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shortlistLocked()
}

func (s *UserStateService) shortlistLocked() (map[string]model.ShortlistEntry, error) {
	pins := map[string]bool{}
	if _, err := s.store.Get(keyShortlist, &pins); err != nil {
		return nil, fmt.Errorf("load shortlist: %w", err)
	}
	notes := map[string]string{}
	if _, err := s.store.Get(keyNotes, &notes); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	entries := make(map[string]model.ShortlistEntry, len(pins))
	for id, pinned := range pins {
		entries[id] = model.ShortlistEntry{Pinned: pinned, Note: notes[id]}
	}
	return entries, nil
}

// ShortlistIDs returns the pinned ids and the full notes map, the inputs the
// share codec needs.
func (s *UserStateService) ShortlistIDs() ([]string, map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pins := map[string]bool{}
	if _, err := s.store.Get(keyShortlist, &pins); err != nil {
		return nil, nil, fmt.Errorf("load shortlist: %w", err)
	}
	notes := map[string]string{}
	if _, err := s.store.Get(keyNotes, &notes); err != nil {
		return nil, nil, fmt.Errorf("load notes: %w", err)
	}

	ids := make([]string, 0, len(pins))
	for id := range pins {
		ids = append(ids, id)
	}
	return ids, notes, nil
}

// MergeShortlist imports shared entries, preserving existing non-conflicting
// state: an id already shortlisted keeps its pin and note. Returns how many
// entries were newly added.
func (s *UserStateService) MergeShortlist(items map[string]string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pins := map[string]bool{}
	if _, err := s.store.Get(keyShortlist, &pins); err != nil {
		return 0, fmt.Errorf("load shortlist: %w", err)
	}
	notes := map[string]string{}
	if _, err := s.store.Get(keyNotes, &notes); err != nil {
		return 0, fmt.Errorf("load notes: %w", err)
	}

	added := 0
	for id, note := range items {
		if pins[id] {
			continue
		}
		pins[id] = true
		added++
		if note != "" && notes[id] == "" {
			notes[id] = note
		}
	}

	if err := s.store.Set(keyShortlist, pins); err != nil {
		return added, err
	}
	if err := s.store.Set(keyNotes, notes); err != nil {
		return added, err
	}
	return added, nil
}

// Profile returns the stored profile (zero value when unset).
func (s *UserStateService) Profile() (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p Profile
	if _, err := s.store.Get(keyProfile, &p); err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// SetProfile stores the profile.
func (s *UserStateService) SetProfile(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(keyProfile, p)
}

// Settings returns the stored settings with defaults applied.
func (s *UserStateService) Settings() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := Settings{RadiusMeters: 8047, Provider: "google"}
	if _, err := s.store.Get(keySettings, &settings); err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// SetSettings stores the settings.
func (s *UserStateService) SetSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(keySettings, settings)
}

// ApplyOverlay merges the persisted user state onto normalized records:
// visited flags, notes and shortlist pins. Called at render time so overlay
// state survives provider refreshes.
func (s *UserStateService) ApplyOverlay(restaurants []model.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	visited := map[string]visitedRecord{}
	if _, err := s.store.Get(keyVisited, &visited); err != nil {
		return fmt.Errorf("load visited set: %w", err)
	}
	notes := map[string]string{}
	if _, err := s.store.Get(keyNotes, &notes); err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	pins := map[string]bool{}
	if _, err := s.store.Get(keyShortlist, &pins); err != nil {
		return fmt.Errorf("load shortlist: %w", err)
	}

	for i := range restaurants {
		r := &restaurants[i]
		if rec, ok := visited[r.ID]; ok {
			r.Visited = rec.Visited
			if rec.Date != "" {
				r.VisitDate = rec.Date
			}
		}
		if note, ok := notes[r.ID]; ok {
			r.Note = note
		}
		r.Shortlisted = pins[r.ID]
	}
	return nil
}
