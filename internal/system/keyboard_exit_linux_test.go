//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func event(typ, code uint16, value int32) []byte {
	rec := make([]byte, eventSize)
	binary.LittleEndian.PutUint16(rec[timevalSize:], typ)
	binary.LittleEndian.PutUint16(rec[timevalSize+2:], code)
	binary.LittleEndian.PutUint32(rec[timevalSize+4:], uint32(value))
	return rec
}

func TestKeyPressed(t *testing.T) {
	down := event(evKey, KeyF4, 1)
	up := event(evKey, KeyF4, 0)
	other := event(evKey, KeyQ, 1)
	sync := event(0x00, 0, 0)

	assert.True(t, keyPressed(down, KeyF4))
	assert.False(t, keyPressed(up, KeyF4), "release is not a press")
	assert.False(t, keyPressed(other, KeyF4))
	assert.True(t, keyPressed(append(append(sync, other...), down...), KeyF4))
	assert.False(t, keyPressed(down[:eventSize-1], KeyF4), "partial record")
	assert.False(t, keyPressed(nil, KeyF4))
}

func TestDeviceGone(t *testing.T) {
	assert.False(t, deviceGone(unix.POLLIN))
	assert.False(t, deviceGone(0))
	assert.True(t, deviceGone(unix.POLLHUP))
	assert.True(t, deviceGone(unix.POLLERR|unix.POLLIN))
	assert.True(t, deviceGone(unix.POLLNVAL))
}

func TestWatchDevice_ReturnsOnHangup(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, w.Close())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		watchDevice(ctx, fmt.Sprintf("/proc/self/fd/%d", r.Fd()), KeyF4, func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher kept polling a hung-up device")
	}
}
