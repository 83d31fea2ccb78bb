package registration

import "sync"

// Step identifies the current position of a user inside the registration
// conversation.
type Step string

const (
	// StepIdle indicates there is no active registration with the user.
	StepIdle Step = "idle"
	// StepName means the bot is waiting for the full name.
	StepName Step = "awaiting_name"
	// StepPhone means the bot is waiting for the phone number.
	StepPhone Step = "awaiting_phone"
	// StepConfirm means the summary was shown and a choice is pending.
	StepConfirm Step = "awaiting_confirmation"
	// StepPayment means payment instructions were shown and a receipt
	// attachment is pending.
	StepPayment Step = "awaiting_payment"
)

// Session holds the conversation state collected so far for one user.
type Session struct {
	Step  Step
	Name  string
	Phone string
}

// Store keeps sessions in memory keyed by Telegram user ID. It is the
// single source of truth for conversation state; sessions do not survive
// a process restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns a copy of the user's session, or an idle one if none exists.
func (s *Store) Get(userID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return *sess
	}
	return Session{Step: StepIdle}
}

// Step returns the user's current conversation step.
func (s *Store) Step(userID int64) Step {
	return s.Get(userID).Step
}

// InProgress reports whether the user has an active registration.
func (s *Store) InProgress(userID int64) bool {
	return s.Step(userID) != StepIdle
}

// Reset wipes the user's session, returning them to idle.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *Store) update(userID int64, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{Step: StepIdle}
		s.sessions[userID] = sess
	}
	fn(sess)
}
