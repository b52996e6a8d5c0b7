package terminal

import (
	"bytes"
	"io"
)

const (
	// PosixControlMoveCursorHome moves cursor to the first column
	PosixControlMoveCursorHome = "\r"
	// PosixControlMoveCursorUp moves cursor up one line
	PosixControlMoveCursorUp = "\x1b[1A"
	// PosixControlClearLine clears the current line
	PosixControlClearLine = "\x1b[2K"
)

// ClearCurrentLine removes all characters from the current line and resets the
// cursor position to the first column.
func ClearCurrentLine(wr io.Writer) error {
	_, err := io.WriteString(wr, PosixControlMoveCursorHome+PosixControlClearLine)
	return err
}

// MoveCursorUp moves the cursor to the line n lines above the current one.
func MoveCursorUp(wr io.Writer, n int) error {
	data := []byte(PosixControlMoveCursorHome)
	data = append(data, bytes.Repeat([]byte(PosixControlMoveCursorUp), n)...)
	_, err := wr.Write(data)
	return err
}
