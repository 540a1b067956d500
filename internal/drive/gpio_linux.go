//go:build linux

package drive

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// openOutput requests the given line on chip (e.g. "gpiochip0") as a
// digital output, initially low, via the Linux GPIO character device.
func openOutput(chip string, offset int) (OutputLine, error) {
	if offset < 0 {
		return nil, fmt.Errorf("drive: invalid output line offset %d", offset)
	}
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer("motorctl-pwm"))
	if err != nil {
		return nil, fmt.Errorf("drive: request output line %s:%d: %w", chip, offset, err)
	}
	return &gpiodOutput{line: l}, nil
}

type gpiodOutput struct {
	line *gpiocdev.Line
}

func (g *gpiodOutput) SetValue(v int) error {
	return g.line.SetValue(v)
}

func (g *gpiodOutput) Close() error {
	// Leave the line low on the way out.
	_ = g.line.SetValue(0)
	return g.line.Close()
}

// watchEdges subscribes to rising edges on the given line and forwards
// each event's kernel timestamp to handler. The handler runs on the
// gpiocdev event dispatch goroutine and must not block.
func watchEdges(chip string, offset int, handler edgeHandler) (EdgeWatch, error) {
	if offset < 0 {
		return nil, fmt.Errorf("drive: invalid input line offset %d", offset)
	}
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithConsumer("motorctl-meas"),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			handler(evt.Timestamp)
		}))
	if err != nil {
		return nil, fmt.Errorf("drive: request input line %s:%d: %w", chip, offset, err)
	}
	return &gpiodWatch{line: l}, nil
}

type gpiodWatch struct {
	line *gpiocdev.Line
}

func (g *gpiodWatch) Close() error {
	return g.line.Close()
}
