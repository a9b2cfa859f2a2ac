package domain

const primingLen = 2

// HistoryLimit is the maximum number of turns kept for maxHistoryTurns
// exchanges plus the priming pair.
func HistoryLimit(maxHistoryTurns int) int {
	if maxHistoryTurns < 0 {
		maxHistoryTurns = 0
	}
	return (maxHistoryTurns + 1) * 2
}

// History is the exchange log of a single agent. The first two turns, once
// seeded, are the priming pair and are never evicted.
type History struct {
	turns []Turn
}

func (h *History) Seed(instructions string) {
	if len(h.turns) > 0 {
		return
	}
	pair := PrimingPair(instructions)
	h.turns = append(h.turns, pair[0], pair[1])
}

func (h *History) Len() int {
	return len(h.turns)
}

func (h *History) Primed() bool {
	return len(h.turns) >= primingLen
}

func (h *History) Turns() []Turn {
	return append([]Turn(nil), h.turns...)
}

func (h *History) Clone() History {
	return History{turns: h.Turns()}
}

func (h *History) Append(turn Turn) {
	h.turns = append(h.turns, turn)
}

// DropDanglingUser removes a trailing user turn that never got a model answer.
func (h *History) DropDanglingUser() bool {
	n := len(h.turns)
	if n <= primingLen || (n-primingLen)%2 == 0 {
		return false
	}
	if h.turns[n-1].Role != RoleUser {
		return false
	}
	h.turns = h.turns[:n-1]
	return true
}

// EvictOldestPair removes the oldest complete user/model pair after the
// priming pair. It returns false when there is no complete pair to evict.
func (h *History) EvictOldestPair() bool {
	if len(h.turns) < primingLen+2 {
		return false
	}
	if h.turns[primingLen].Role != RoleUser || h.turns[primingLen+1].Role != RoleModel {
		return false
	}
	h.turns = append(h.turns[:primingLen], h.turns[primingLen+2:]...)
	return true
}

// MakeRoom evicts pairs until incoming more turns fit within limit.
func (h *History) MakeRoom(limit, incoming int) int {
	evicted := 0
	for len(h.turns)+incoming > limit && h.EvictOldestPair() {
		evicted++
	}
	return evicted
}

// Trim evicts pairs until the history fits within limit.
func (h *History) Trim(limit int) int {
	return h.MakeRoom(limit, 0)
}
