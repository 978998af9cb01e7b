//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const evKey = 0x01

// input_event = timeval + u16 type + u16 code + s32 value.
var (
	timevalSize = binary.Size(unix.Timeval{})
	eventSize   = timevalSize + 2 + 2 + 4
)

// WatchExitKey watches the evdev devices under /dev/input and calls onExit
// once when key is pressed. The watchers stop when ctx is done.
//
// It is best-effort: without readable input devices it logs and returns.
func WatchExitKey(ctx context.Context, logger Logger, key uint16, onExit func()) {
	if onExit == nil {
		return
	}
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if logger != nil {
			logger.Infof("input", "no evdev devices found, exit key disabled")
		}
		return
	}

	var once sync.Once
	trigger := func() {
		once.Do(func() {
			if logger != nil {
				logger.Infof("input", "exit key %d pressed", key)
			}
			onExit()
		})
	}
	for _, p := range paths {
		go watchDevice(ctx, p, key, trigger)
	}
}

func watchDevice(ctx context.Context, path string, key uint16, trigger func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 64*eventSize)
	for ctx.Err() == nil {
		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device went away.
			return
		}
		if deviceGone(pollFds[0].Revents) {
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if keyPressed(buf[:n], key) {
			trigger()
			return
		}
	}
}

// deviceGone reports a hangup or error on an unplugged device, which poll
// keeps returning without waiting.
func deviceGone(revents int16) bool {
	return revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0
}

// keyPressed scans a run of input_event records for a key-down of key.
// A trailing partial record is ignored.
func keyPressed(events []byte, key uint16) bool {
	for off := 0; off+eventSize <= len(events); off += eventSize {
		rec := events[off+timevalSize : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[0:2])
		code := binary.LittleEndian.Uint16(rec[2:4])
		value := int32(binary.LittleEndian.Uint32(rec[4:8]))
		if typ == evKey && code == key && value == 1 {
			return true
		}
	}
	return false
}
