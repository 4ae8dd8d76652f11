package integration

import "errors"

//go:generate go run github.com/codewandler/actgen-go/cmd/actgen -source counter.go -type Counter -id -output counter_actor.go

var errOddValue = errors.New("value is odd")

// Counter is the plain, single-goroutine type the actor layer is generated
// for. It knows nothing about mailboxes or dispatchers.
type Counter struct {
	value int
}

func NewCounter(value int) Counter { return Counter{value: value} }

func (c *Counter) Increment() { c.value++ }

func (c *Counter) AddNumber(n int) int {
	c.value += n
	return c.value
}

func (c Counter) GetValue() int { return c.value }

// Block parks the dispatcher until released. Used to observe that
// fire-and-forget calls return before their message is processed.
func (c *Counter) Block(release chan bool) { <-release }

// Crash panics on purpose, to exercise crash containment.
func (c *Counter) Crash() int { panic("counter crashed") }

// Half returns the halved value, or an error when the value is odd.
func (c *Counter) Half() (int, error) {
	if c.value%2 != 0 {
		return 0, errOddValue
	}
	return c.value / 2, nil
}
