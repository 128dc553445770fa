package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasStaticLists(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Aljon Montecalvo", c.Profile.Name)
	assert.Len(t, c.Skills, 9)
	assert.Len(t, c.Education, 3)
	assert.Len(t, c.Certificates, 3)
	assert.Len(t, c.Services, 6)
	assert.Len(t, c.Projects, 4)
	assert.Equal(t, []string{"home", "about", "services", "portfolio", "contact"}, c.SectionIDs())
	assert.Empty(t, c.Certificates[0].Note)
	assert.Equal(t, "2022 - Present", c.Education[1].YearRange)
}

func TestContent_Project(t *testing.T) {
	c := MustDefault()
	p, ok := c.Project(1)
	require.True(t, ok)
	assert.Equal(t, "/Video/IMS.mp4", p.Video)

	_, ok = c.Project(4)
	assert.False(t, ok)
	_, ok = c.Project(-1)
	assert.False(t, ok)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "nav: [{id: home, label: Home}]"},
		{"no nav", "profile: {name: A}"},
		{"duplicate nav", "profile: {name: A}\nnav: [{id: home}, {id: home}]"},
		{"nav without id", "profile: {name: A}\nnav: [{label: Home}]"},
		{"project without video", "profile: {name: A}\nnav: [{id: home}]\nprojects: [{title: X}]"},
		{"misspelled key", "profile: {name: A}\nnav: [{id: home}]\nprojets: []"},
		{"wrong type", "profile: {name: A}\nnav: {id: home}"},
		{"nav id with spaces", "profile: {name: A}\nnav: [{id: 'my section'}]"},
		{"nav id of animated element", "profile: {name: A}\nnav: [{id: hero}]"},
		{"nav id of project card", "profile: {name: A}\nnav: [{id: project-0}]\nprojects: [{title: X, video: /Video/x.mp4}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("profile: [oops"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestParse_UnquotedYearAccepted(t *testing.T) {
	c, err := Parse([]byte("profile: {name: A}\nnav: [{id: home}]\ncertificates: [{year: 2024, title: SQL}]"))
	require.NoError(t, err)
	assert.Equal(t, "2024", c.Certificates[0].Year)
}

func TestRevealIDs_DisjointFromSections(t *testing.T) {
	c := MustDefault()
	ids := c.RevealIDs()
	assert.Contains(t, ids, "hero")
	assert.Contains(t, ids, "project-3")
	for _, id := range c.SectionIDs() {
		assert.NotContains(t, ids, id)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: {name: Someone}\nnav: [{id: home, label: Home}]\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Someone", c.Profile.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStore_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: {name: First}\nnav: [{id: home}]\n"), 0o644))

	s, err := NewStore(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "First", s.Get().Profile.Name)

	require.NoError(t, os.WriteFile(path, []byte("profile: {name: ''}\nnav: [{id: home}]\n"), 0o644))
	assert.ErrorIs(t, s.Reload(), ErrInvalid)
	assert.Equal(t, "First", s.Get().Profile.Name)

	require.NoError(t, os.WriteFile(path, []byte("profile: {name: Second}\nnav: [{id: home}]\n"), 0o644))
	require.NoError(t, s.Reload())
	assert.Equal(t, "Second", s.Get().Profile.Name)
}

func TestStore_WatchPicksUpWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: {name: Before}\nnav: [{id: home}]\n"), 0o644))
	s, err := NewStore(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Keep rewriting until the watcher has registered and seen a write.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("profile: {name: After}\nnav: [{id: home}]\n"), 0o644)
		return s.Get().Profile.Name == "After"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStore_WatchEmbeddedIsNoop(t *testing.T) {
	s := StaticStore(MustDefault())
	assert.NoError(t, s.Watch(context.Background()))
}
