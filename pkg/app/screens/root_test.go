package screens

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lemon199080/komikweb/pkg/config"
	"github.com/Lemon199080/komikweb/pkg/data"
)

func testRoot(t *testing.T) (*RootScreen, *data.Repository) {
	t.Helper()
	repo, err := data.OpenRepository(filepath.Join(t.TempDir(), "test.db"), data.NewNotifier())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := &config.Config{}
	cfg.API.BaseURL = "http://127.0.0.1:0"
	cfg.API.Timeout = time.Second
	cfg.Reader.AutoHideDelay = time.Second
	return NewRootScreen(cfg, repo, nil), repo
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestLibraryListenerSeesToggle(t *testing.T) {
	root, repo := testRoot(t)

	_, err := repo.ToggleBookmark("naruto")
	require.NoError(t, err)

	// The pending listener picks up the published event.
	msg := root.library.waitForEvent()()
	assert.Equal(t, storeChangedMsg{}, msg)
}

func TestStoreChangeReachesHiddenLibrary(t *testing.T) {
	root, _ := testRoot(t)

	// A toggle on the details screen fires while the library is not
	// showing; the refresh-and-re-arm command must still be issued.
	root.currentView = detailsView
	_, cmd := root.Update(storeChangedMsg{})
	assert.NotNil(t, cmd, "hidden library must refresh and re-arm its listener")
}

func TestRootRecoversFromScreenPanic(t *testing.T) {
	root, _ := testRoot(t)
	root.home = nil // forwarded update dereferences the screen

	m, _ := root.Update(keyRunes('j'))
	require.NotNil(t, m)
	assert.NotEmpty(t, root.fault)
	assert.Contains(t, root.View(), "Something went wrong")

	// Reload clears the fault and restarts from home.
	root.home = NewHomeScreen(nil)
	_, cmd := root.Update(keyRunes('r'))
	assert.Empty(t, root.fault)
	assert.NotNil(t, cmd)
	assert.Equal(t, homeView, root.currentView)
}

func TestRootFaultQuit(t *testing.T) {
	root, _ := testRoot(t)
	root.fault = "boom"

	_, cmd := root.Update(keyRunes('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
