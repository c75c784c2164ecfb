package fakenavigator

import (
	"sync"

	"github.com/wedvenue/wedvenue-client/nav"
)

var _ nav.Navigator = (*FakeNavigator)(nil)

// FakeNavigator records every navigation and notification for assertions.
type FakeNavigator struct {
	lock sync.RWMutex
	path string

	assigns  []string
	replaces []string
	notices  []string
}

func NewFakeNavigator() *FakeNavigator {
	return &FakeNavigator{path: nav.RouteHome}
}

func (fn *FakeNavigator) CurrentPath() string {
	fn.lock.RLock()
	defer fn.lock.RUnlock()
	return fn.path
}

// SetPath moves the fake to a screen without recording a navigation event.
func (fn *FakeNavigator) SetPath(path string) {
	fn.lock.Lock()
	defer fn.lock.Unlock()
	fn.path = path
}

func (fn *FakeNavigator) Assign(path string) {
	fn.lock.Lock()
	defer fn.lock.Unlock()
	fn.assigns = append(fn.assigns, path)
	fn.path = path
}

func (fn *FakeNavigator) Replace(path string) {
	fn.lock.Lock()
	defer fn.lock.Unlock()
	fn.replaces = append(fn.replaces, path)
	fn.path = path
}

func (fn *FakeNavigator) Notify(message string) {
	fn.lock.Lock()
	defer fn.lock.Unlock()
	fn.notices = append(fn.notices, message)
}

func (fn *FakeNavigator) Assigns() []string {
	fn.lock.RLock()
	defer fn.lock.RUnlock()
	return append([]string(nil), fn.assigns...)
}

func (fn *FakeNavigator) Replaces() []string {
	fn.lock.RLock()
	defer fn.lock.RUnlock()
	return append([]string(nil), fn.replaces...)
}

func (fn *FakeNavigator) Notices() []string {
	fn.lock.RLock()
	defer fn.lock.RUnlock()
	return append([]string(nil), fn.notices...)
}

// NavigationCount returns the total number of Assign and Replace calls.
func (fn *FakeNavigator) NavigationCount() int {
	fn.lock.RLock()
	defer fn.lock.RUnlock()
	return len(fn.assigns) + len(fn.replaces)
}
