package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryPreferenceStore(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()

	_, ok, err := store.LoadTheme(ctx, ThemePreferenceKey)
	if err != nil {
		t.Fatalf("LoadTheme returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected empty store")
	}
	if err := store.SaveTheme(ctx, "", ThemeDark); err != nil {
		t.Fatalf("SaveTheme returned error: %v", err)
	}
	theme, ok, err := store.LoadTheme(ctx, ThemePreferenceKey)
	if err != nil || !ok || theme != ThemeDark {
		t.Fatalf("expected stored dark theme, got %q %v %v", theme, ok, err)
	}
}

func TestResolveThemeOrder(t *testing.T) {
	assert.Equal(t, ThemeLight, ResolveTheme(ThemeLight, true, true))
	assert.Equal(t, ThemeDark, ResolveTheme(ThemeDark, true, false))
	assert.Equal(t, ThemeDark, ResolveTheme("", false, true))
	assert.Equal(t, ThemeLight, ResolveTheme("", false, false))
	assert.Equal(t, ThemeLight, ResolveTheme("neon", true, true))
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	_, err = ParseTheme("solarized")
	assert.Error(t, err)

	assert.Equal(t, ThemeLight, Theme("").Normalize())
	assert.Equal(t, ThemeDark, Theme("").Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestLoadThemePreferencePerViewer(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()
	viewer := ViewerContext{UserID: "user-1"}
	require.NoError(t, store.SaveTheme(ctx, ThemeKey(viewer), ThemeLight))

	theme, err := LoadThemePreference(ctx, store, ViewerContext{UserID: "user-1", PrefersDarkScheme: true})
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	theme, err = LoadThemePreference(ctx, store, ViewerContext{UserID: "user-2", PrefersDarkScheme: true})
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	theme, err = LoadThemePreference(ctx, nil, ViewerContext{})
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisPreferenceStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisPreferenceStore(client, "", ttl), mr
}

func TestRedisPreferenceStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	ctx := context.Background()

	_, ok, err := store.LoadTheme(ctx, ThemePreferenceKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveTheme(ctx, ThemePreferenceKey, ThemeDark))
	assert.Equal(t, "dark", mustGet(t, mr, "dashboard:pref:theme"))

	theme, ok, err := store.LoadTheme(ctx, ThemePreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, theme)
}

func TestRedisPreferenceStoreReadsUnknownValuesAsLight(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	require.NoError(t, mr.Set("dashboard:pref:theme", "neon"))
	theme, ok, err := store.LoadTheme(context.Background(), ThemePreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ThemeLight, theme)

	require.NoError(t, mr.Set("dashboard:pref:theme", " DARK "))
	theme, _, err = store.LoadTheme(context.Background(), ThemePreferenceKey)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
}

func TestControllerLoadThemeWritesResolvedThemeBack(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	require.NoError(t, mr.Set("dashboard:pref:theme", "neon"))

	ctrl := NewController(ControllerOptions{ThemeStore: store})
	theme, err := ctrl.LoadTheme(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
	assert.Equal(t, "light", mustGet(t, mr, "dashboard:pref:theme"))

	mr.Del("dashboard:pref:theme")
	fresh := NewController(ControllerOptions{ThemeStore: store})
	theme, err = fresh.LoadTheme(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	assert.Equal(t, "dark", mustGet(t, mr, "dashboard:pref:theme"))
}

func TestRedisPreferenceStoreTTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	require.NoError(t, store.SaveTheme(context.Background(), "", ThemeLight))
	assert.Equal(t, time.Hour, mr.TTL("dashboard:pref:theme"))
	mr.FastForward(2 * time.Hour)
	_, ok, err := store.LoadTheme(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisPreferenceStoreReportsConnectionErrors(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	mr.Close()
	_, _, err := store.LoadTheme(context.Background(), ThemePreferenceKey)
	assert.Error(t, err)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
