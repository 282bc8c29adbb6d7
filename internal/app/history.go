package app

// DefaultHistorySize bounds each history stack.
const DefaultHistorySize = 50

// History is a pair of bounded stacks: back holds where the user came from,
// forward holds where they went back from.
type History struct {
	back     []string
	forward  []string
	capacity int
}

// NewHistory returns a History keeping at most capacity paths per stack.
// A non-positive capacity uses DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 || capacity > DefaultHistorySize {
		capacity = DefaultHistorySize
	}
	return &History{capacity: capacity}
}

func (h *History) push(stack []string, path string) []string {
	stack = append(stack, path)
	if len(stack) > h.capacity {
		stack = append(stack[:0:0], stack[len(stack)-h.capacity:]...)
	}
	return stack
}

// Visit records leaving from for a new location. An empty from (no current
// directory) records nothing on the back stack. Forward is cleared.
func (h *History) Visit(from string) {
	if from != "" {
		h.back = h.push(h.back, from)
	}
	h.forward = nil
}

// PeekBack returns the path Back would return.
func (h *History) PeekBack() (string, bool) {
	if len(h.back) == 0 {
		return "", false
	}
	return h.back[len(h.back)-1], true
}

// PeekForward returns the path Forward would return.
func (h *History) PeekForward() (string, bool) {
	if len(h.forward) == 0 {
		return "", false
	}
	return h.forward[len(h.forward)-1], true
}

// Back pops the back stack, pushing current onto forward.
func (h *History) Back(current string) (string, bool) {
	p, ok := h.PeekBack()
	if !ok {
		return "", false
	}
	h.back = h.back[:len(h.back)-1]
	if current != "" {
		h.forward = h.push(h.forward, current)
	}
	return p, true
}

// Forward pops the forward stack, pushing current onto back.
func (h *History) Forward(current string) (string, bool) {
	p, ok := h.PeekForward()
	if !ok {
		return "", false
	}
	h.forward = h.forward[:len(h.forward)-1]
	if current != "" {
		h.back = h.push(h.back, current)
	}
	return p, true
}

func (h *History) CanBack() bool    { return len(h.back) > 0 }
func (h *History) CanForward() bool { return len(h.forward) > 0 }

// Len returns the sizes of the back and forward stacks.
func (h *History) Len() (back, forward int) {
	return len(h.back), len(h.forward)
}
