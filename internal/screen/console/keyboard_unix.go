//go:build darwin || linux

package console

import (
	"os"

	"golang.org/x/sys/unix"
)

// unixKeyboard puts stdin into raw (non-canonical, no-echo) mode via
// termios ioctls so Poll can read whatever bytes are waiting without
// blocking for a newline, then maps single-character reads to key
// names. Grounded on gazed-vu's sys_unix.go: a build-tag-gated file
// isolating the one golang.org/x/sys/unix syscall concern from the
// portable rendering code around it.
type unixKeyboard struct {
	fd       int
	original unix.Termios
	buf      [16]byte
}

// NewUnixKeyboard switches the terminal at fd (typically
// int(os.Stdin.Fd())) into raw mode. Callers must call Close to restore
// the original terminal settings.
func NewUnixKeyboard(fd int) (*unixKeyboard, error) {
	original, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	raw := *original
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, err
	}
	return &unixKeyboard{fd: fd, original: *original}, nil
}

// Poll reads whatever bytes are currently buffered on stdin (non-
// blocking, since VMIN/VTIME are both zero) and maps them to key names.
func (k *unixKeyboard) Poll() []string {
	n, err := unix.Read(k.fd, k.buf[:])
	if err != nil || n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for _, b := range k.buf[:n] {
		out = append(out, keyName(b))
	}
	return out
}

// Close restores the terminal's original (cooked) mode.
func (k *unixKeyboard) Close() error {
	return unix.IoctlSetTermios(k.fd, ioctlSetTermios, &k.original)
}

func keyName(b byte) string {
	switch b {
	case ' ':
		return "space"
	case '\r', '\n':
		return "enter"
	case 27:
		return "escape"
	default:
		return string(rune(b))
	}
}

// Stdin is a convenience constructor over the process's own stdin fd.
func Stdin() (*unixKeyboard, error) {
	return NewUnixKeyboard(int(os.Stdin.Fd()))
}
