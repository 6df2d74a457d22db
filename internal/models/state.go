package models

// State is the whole application state persisted as one snapshot.
type State struct {
	NextTaskID int64         `json:"nextTaskId" bson:"nextTaskId"`
	Tasks      []*Task       `json:"tasks" bson:"tasks"`
	Messages   []*Message    `json:"messages" bson:"messages"`
	Sales      []SaleRecord  `json:"sales" bson:"sales"`
	Session    *SessionState `json:"session,omitempty" bson:"session,omitempty"`
}

// SessionState holds UI-only fields that never reach storage.
type SessionState struct {
	ActiveCart []SaleItem `json:"activeCart,omitempty" bson:"activeCart,omitempty"`
	Loading    bool       `json:"loading,omitempty" bson:"loading,omitempty"`
}

// NewState returns an empty state whose first task id is 1.
func NewState() *State {
	return &State{NextTaskID: 1}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		NextTaskID: s.NextTaskID,
		Tasks:      make([]*Task, len(s.Tasks)),
		Messages:   make([]*Message, len(s.Messages)),
		Sales:      append([]SaleRecord(nil), s.Sales...),
	}
	for i, t := range s.Tasks {
		c.Tasks[i] = t.Clone()
	}
	for i, m := range s.Messages {
		c.Messages[i] = m.Clone()
	}
	if s.Session != nil {
		sess := *s.Session
		sess.ActiveCart = append([]SaleItem(nil), s.Session.ActiveCart...)
		c.Session = &sess
	}
	return c
}

// Persistable returns a deep copy stripped of transient fields.
func (s *State) Persistable() *State {
	c := s.Clone()
	c.Session = nil
	if c.NextTaskID < 1 {
		c.NextTaskID = 1
	}
	return c
}
