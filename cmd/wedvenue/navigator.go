package main

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wedvenue/wedvenue-client/nav"
)

var _ nav.Navigator = (*consoleNavigator)(nil)

// consoleNavigator is the terminal stand-in for a browser's location and
// alert surface: navigation events are printed, notices go to stdout.
type consoleNavigator struct {
	lock   sync.RWMutex
	path   string
	logger zerolog.Logger
}

func newConsoleNavigator(logger zerolog.Logger) *consoleNavigator {
	return &consoleNavigator{path: nav.RouteHome, logger: logger}
}

func (cn *consoleNavigator) CurrentPath() string {
	cn.lock.RLock()
	defer cn.lock.RUnlock()
	return cn.path
}

func (cn *consoleNavigator) Assign(path string) {
	cn.lock.Lock()
	defer cn.lock.Unlock()
	cn.path = path
	cn.logger.Info().Str("path", path).Msg("navigate")
}

func (cn *consoleNavigator) Replace(path string) {
	cn.lock.Lock()
	defer cn.lock.Unlock()
	cn.path = path
	cn.logger.Info().Str("path", path).Msg("navigate (replace)")
}

func (cn *consoleNavigator) Notify(message string) {
	fmt.Println(message)
}
