//go:build !linux

package drive

import "fmt"

// Stub implementations for non-Linux platforms.

func openOutput(chip string, offset int) (OutputLine, error) {
	return nil, fmt.Errorf("drive: gpio unsupported on this platform")
}

func watchEdges(chip string, offset int, handler edgeHandler) (EdgeWatch, error) {
	return nil, fmt.Errorf("drive: gpio unsupported on this platform")
}
