//go:build !linux

package system

import "context"

// WatchExitKey is a no-op off linux; the display command stops on its
// context only.
func WatchExitKey(ctx context.Context, logger Logger, key uint16, onExit func()) {
	if logger != nil {
		logger.Infof("input", "exit key unsupported on this platform")
	}
}
