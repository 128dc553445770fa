package view

import (
	"testing"

	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/typing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState(content.MustDefault(), DefaultOptions(), nil)
	snap := s.Snapshot()

	assert.True(t, snap.Loading)
	assert.Equal(t, TabSkills, snap.Tab)
	assert.Equal(t, HomeSection, snap.ActiveNav)
	assert.Equal(t, 1, snap.SkillsPage)
	assert.Equal(t, 2, snap.SkillsPages)
	assert.False(t, snap.MenuOpen)
	assert.False(t, snap.LightboxOpen())
	assert.Len(t, snap.Previews, 4)
	assert.Empty(t, snap.Revealed)
}

func TestState_FinishLoadingOnce(t *testing.T) {
	s := NewState(content.MustDefault(), DefaultOptions(), nil)
	assert.True(t, s.FinishLoading())
	assert.False(t, s.FinishLoading())
}

func TestState_SetTyping(t *testing.T) {
	s := NewState(content.MustDefault(), DefaultOptions(), nil)
	s.SetTyping(typing.Progress{Text: "Alj"})
	assert.Equal(t, "Alj", s.Snapshot().Typed)
	assert.False(t, s.Snapshot().TypingComplete)
}

func TestState_ExactlyOneTabActive(t *testing.T) {
	s := NewState(content.MustDefault(), DefaultOptions(), nil)
	for _, tab := range Tabs {
		require.NoError(t, s.SelectTab(tab))
		assert.Equal(t, tab, s.Snapshot().Tab)
	}
	assert.Error(t, s.SelectTab(Tab("")))
	assert.Equal(t, TabCertificates, s.Snapshot().Tab)
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := NewState(content.MustDefault(), DefaultOptions(), nil)
	snap := s.Snapshot()
	snap.Previews[0].Playing = true
	assert.False(t, s.Snapshot().Previews[0].Playing)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("education")
	require.NoError(t, err)
	assert.Equal(t, TabEducation, tab)

	_, err = ParseTab("Skills")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestRevealTargets(t *testing.T) {
	ids := RevealTargets(content.MustDefault())
	assert.Contains(t, ids, "hero")
	assert.Contains(t, ids, "service-5")
	assert.Contains(t, ids, "project-3")
	assert.NotContains(t, ids, "project-4")
}
