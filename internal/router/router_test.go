package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/screen"
)

type fakeScreen struct {
	title   string
	inits   int
	resumes int
	seen    []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }

type resumable struct{ fakeScreen }

func (s *resumable) Resume() tea.Cmd {
	s.resumes++
	return func() tea.Msg { return "resumed" }
}

func TestPushAndPop(t *testing.T) {
	home := &resumable{fakeScreen{title: "home"}}
	r := New(home)

	child := &fakeScreen{title: "study"}
	r.Update(Push(child)())
	require.Equal(t, 2, r.Depth())
	assert.Equal(t, "study", r.View(80, 24))
	assert.Equal(t, 1, child.inits)
	assert.Zero(t, home.resumes)

	cmd := r.Update(Pop()())
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
	assert.Equal(t, 1, home.resumes)
	require.NotNil(t, cmd)
	assert.Equal(t, "resumed", cmd())
}

func TestPopKeepsRoot(t *testing.T) {
	home := &resumable{fakeScreen{title: "home"}}
	r := New(home)

	assert.Nil(t, r.Update(Pop()()))
	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, home.resumes, "the root is not resumed by a no-op pop")
}

func TestPushNilIgnored(t *testing.T) {
	r := New(&fakeScreen{title: "home"})
	r.Update(NavMsg{Op: OpPush})
	assert.Equal(t, 1, r.Depth())
}

func TestOtherMessagesReachActiveOnly(t *testing.T) {
	home := &fakeScreen{title: "home"}
	child := &fakeScreen{title: "quiz"}
	r := New(home)
	r.Update(Push(child)())

	r.Update("tick")
	assert.Equal(t, []tea.Msg{"tick"}, child.seen)
	assert.Empty(t, home.seen)
}
