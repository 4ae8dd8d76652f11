package integration

//go:generate go run github.com/codewandler/actgen-go/cmd/actgen -source recorder.go -type Recorder -override Record -capacity 8 -output recorder_actor.go

// Recorder is the override fixture: its Record body is replaced by a hook
// supplied at construction time, while Calls still runs the real method.
type Recorder struct {
	calls int
}

func NewRecorder() Recorder { return Recorder{} }

func (r *Recorder) Record(event string) {}

func (r *Recorder) Calls() int { return r.calls }
