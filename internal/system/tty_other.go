//go:build !linux

package system

import "errors"

var errNoConsole = errors.New("virtual console control is only available on linux")

func SetGraphicsMode() error { return errNoConsole }
func RestoreTextMode() error { return errNoConsole }

func writeVT(string) error { return errNoConsole }
