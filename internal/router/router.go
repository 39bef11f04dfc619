package router

import (
	"github.com/abhisek/imodel/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// ReplaceScreenMsg requests the router to swap the active screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router holds the screen that currently owns the content area. The quiz
// moves forward only, so navigation is always a replacement.
type Router struct {
	active screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{active: initial}
}

// Replace leaves the active screen, installs s and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if r.active != nil {
		leave(r.active)
	}
	r.active = s
	return s.Init()
}

// Close tears down the active screen.
func (r *Router) Close() {
	if r.active != nil {
		leave(r.active)
	}
}

// Active returns the active screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ReplaceScreenMsg); ok {
		return r.Replace(msg.Screen)
	}
	if r.active == nil {
		return nil
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}

func leave(s screen.Screen) {
	if l, ok := s.(screen.Leaver); ok {
		l.Leave()
	}
}
