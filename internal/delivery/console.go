package delivery

import (
	"fmt"
	"io"
	"sync"

	"github.com/notexe/remind-bot/internal/reminder"
)

// Console writes reminder messages to a local writer. It backs the
// remindctl REPL, where "delivery" just means printing to the terminal.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a console transport writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Deliver implements reminder.Deliverer.
func (c *Console) Deliver(target string, kind reminder.TargetKind, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "\n%s\n", text)
	return err
}
