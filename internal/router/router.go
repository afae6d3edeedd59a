// Package router keeps the stack of screens behind the home menu.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/screen"
)

type Op int

const (
	OpPush Op = iota
	OpPop
)

// NavMsg asks the router to change the stack. Screens emit it through
// Push and Pop rather than building it directly.
type NavMsg struct {
	Op     Op
	Screen screen.Screen
}

// Push is a command that opens s on top of the current screen.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: OpPush, Screen: s} }
}

// Pop is a command that closes the current screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: OpPop} }
}

// Router owns the screen stack. The root screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

func (r *Router) push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// pop drops the top screen and resumes the one revealed, if it wants to be.
func (r *Router) pop() tea.Cmd {
	if len(r.stack) == 1 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Update applies navigation messages and sends everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if nav, ok := msg.(NavMsg); ok {
		switch nav.Op {
		case OpPush:
			if nav.Screen != nil {
				return r.push(nav.Screen)
			}
		case OpPop:
			return r.pop()
		}
		return nil
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
