package view

type MutationStatus int

const (
	MutationPending MutationStatus = iota
	MutationConfirmed
	MutationRolledBack
)

// Mutation is one optimistic local change: the mutated snapshot is swapped in
// immediately, the previous one kept until the asynchronous action reports
// back. Confirm discards the saved snapshot, Rollback restores it.
type Mutation struct {
	session          *Session
	previousRows     []Item
	previousSelected map[string]struct{}
	status           MutationStatus
}

// Begin applies mutate to a copy of the current snapshot and installs the
// result. The returned Mutation must be resolved with Confirm or Rollback
// once the backing action completes.
func (s *Session) Begin(mutate func([]Item) []Item) *Mutation {
	previousRows := s.rows
	previousSelected := make(map[string]struct{}, len(s.selected))
	for id := range s.selected {
		previousSelected[id] = struct{}{}
	}

	copied := make([]Item, len(s.rows))
	copy(copied, s.rows)
	s.Replace(mutate(copied))

	return &Mutation{
		session:          s,
		previousRows:     previousRows,
		previousSelected: previousSelected,
		status:           MutationPending,
	}
}

func (m *Mutation) Status() MutationStatus {
	return m.status
}

// Confirm finalizes the optimistic change. No-op unless pending.
func (m *Mutation) Confirm() {
	if m.status != MutationPending {
		return
	}
	m.status = MutationConfirmed
	m.previousRows = nil
	m.previousSelected = nil
}

// Rollback restores the snapshot and selection saved at Begin. No-op unless
// pending. The user-visible error message comes from the action result, not
// from here.
func (m *Mutation) Rollback() {
	if m.status != MutationPending {
		return
	}
	m.status = MutationRolledBack
	m.session.rows = m.previousRows
	m.session.selected = m.previousSelected
	m.previousRows = nil
	m.previousSelected = nil
}
