//go:build darwin || linux

package interaction

import "golang.org/x/sys/unix"

// makeRaw disables echo and line buffering. ISIG stays enabled so Ctrl+C
// still reaches the signal handler.
func makeRaw(state unix.Termios) unix.Termios {
	state.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	state.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	state.Cflag |= unix.CS8
	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0
	return state
}
