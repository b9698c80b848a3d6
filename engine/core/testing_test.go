package core

// fakeWindow is a scripted Window: each PollEvents call delivers the next
// batch of events, and the window closes once the script runs out.
type fakeWindow struct {
	cb      func(Event)
	batches [][]Event
	closed  bool
	title   string
	w, h    int
}

func (f *fakeWindow) PollEvents() {
	if len(f.batches) == 0 {
		f.closed = true
		return
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	for _, ev := range b {
		f.cb(ev)
	}
}

func (f *fakeWindow) ShouldClose() bool               { return f.closed }
func (f *fakeWindow) RequestClose()                   { f.closed = true }
func (f *fakeWindow) FramebufferSize() (int, int)     { return f.w, f.h }
func (f *fakeWindow) SetTitle(t string)               { f.title = t }
func (f *fakeWindow) SetEventCallback(cb func(Event)) { f.cb = cb }
func (f *fakeWindow) PrePresentNotify()               {}
