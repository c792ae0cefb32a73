package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onthego/internal/application"
	"onthego/internal/domain/service"
	"onthego/internal/infrastructure/places"
	"onthego/internal/infrastructure/store"
	"onthego/internal/share"
)

func newTestShareSetup(t *testing.T) (ShareUseCase, RestaurantSearchUseCase, *application.UserStateService) {
	t.Helper()
	kv := store.NewMemoryStore()
	userState := application.NewUserStateService(kv)
	plans := application.NewPlanStore(kv)
	search := NewRestaurantSearchUseCase(nil, places.NewDemoProvider(), service.NewDefaultScorer(), userState, plans, 8047, 20)
	return NewShareUseCase(userState, search), search, userState
}

func TestExportImportRoundTrip(t *testing.T) {
	shareUC, search, userState := newTestShareSetup(t)

	_, err := search.SetCenter(context.Background(), sfContext())
	require.NoError(t, err)
	require.NoError(t, userState.SetPinned("demo:demo-1", true))
	require.NoError(t, userState.SetPinned("demo:demo-7", true))
	require.NoError(t, userState.SetNote("demo:demo-1", "window table"))

	token, err := shareUC.Export()
	require.NoError(t, err)

	payload, err := share.Decode(token)
	require.NoError(t, err)
	assert.Len(t, payload.Items, 2)
	assert.Equal(t, "San Francisco", payload.Center.Label)

	// Import into a fresh session.
	otherUC, otherSearch, otherState := newTestShareSetup(t)
	result, err := otherUC.Import(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, result.Imported)
	assert.Equal(t, 2, result.Added)
	assert.True(t, result.Recentered)

	ids, notes, err := otherState.ShortlistIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"demo:demo-1", "demo:demo-7"}, ids)
	assert.Equal(t, "window table", notes["demo:demo-1"])

	// The import re-centered the receiving session on the shared location.
	_, ctx := otherSearch.Results()
	require.NotNil(t, ctx)
	assert.Equal(t, "San Francisco", ctx.Label)
}

func TestImportUndecodableTokenIsNoOp(t *testing.T) {
	shareUC, _, userState := newTestShareSetup(t)
	require.NoError(t, userState.SetPinned("demo:demo-3", true))

	for _, token := range []string{"", "garbage!!", "#otg=%%%"} {
		result, err := shareUC.Import(context.Background(), token)
		require.NoError(t, err, "token %q", token)
		assert.False(t, result.Imported)
		assert.Zero(t, result.Added)
	}

	// Existing state untouched.
	ids, _, err := userState.ShortlistIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"demo:demo-3"}, ids)
}

func TestImportPreservesExistingEntries(t *testing.T) {
	shareUC, search, userState := newTestShareSetup(t)
	_, err := search.SetCenter(context.Background(), sfContext())
	require.NoError(t, err)

	// The receiver already pinned demo-1 with their own note.
	require.NoError(t, userState.SetPinned("demo:demo-1", true))
	require.NoError(t, userState.SetNote("demo:demo-1", "my own note"))

	token, err := share.Encode(
		[]string{"demo:demo-1", "demo:demo-2"},
		map[string]string{"demo:demo-1": "their note"},
		sfContext(), "")
	require.NoError(t, err)

	result, err := shareUC.Import(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, result.Imported)
	assert.Equal(t, 1, result.Added)

	_, notes, err := userState.ShortlistIDs()
	require.NoError(t, err)
	assert.Equal(t, "my own note", notes["demo:demo-1"])
}
