package registration

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KeyboardHint tells the transport layer which reply keyboard to attach.
// The flow never builds platform markup itself.
type KeyboardHint int

const (
	// KeyboardNone leaves the current keyboard untouched.
	KeyboardNone KeyboardHint = iota
	// KeyboardMain shows the persistent keyboard with the registration trigger.
	KeyboardMain
	// KeyboardCancel shows the transient keyboard with the cancel button.
	KeyboardCancel
)

// Choice keys understood by the transport's inline keyboard.
const (
	ChoiceConfirm = "confirm"
	ChoiceRestart = "restart"
)

// Choice is one inline option offered to the user.
type Choice struct {
	Key   string
	Label string
}

// Reply is the structured outcome of a flow transition: text to deliver,
// a reply-keyboard hint and optional inline choices. Edit asks the
// transport to replace the originating message instead of sending a new one.
type Reply struct {
	Text     string
	Keyboard KeyboardHint
	Choices  []Choice
	Edit     bool
}

// Texts carries the rendered message templates for every flow prompt.
// Summary is a fmt string taking the collected name and canonical phone.
type Texts struct {
	AskName        string
	AskPhone       string
	PhoneInvalid   string
	Summary        string
	Payment        string
	ReceiptMissing string
	Accepted       string
	Cancelled      string
	ConfirmLabel   string
	RestartLabel   string
}

// Recorder receives domain counter events from the flow. Implementations
// must tolerate concurrent calls.
type Recorder interface {
	RegistrationStarted()
	RegistrationCompleted()
	RegistrationCancelled()
	RegistrationRestarted()
	PhoneValidated(ok bool)
}

type noopRecorder struct{}

func (noopRecorder) RegistrationStarted()   {}
func (noopRecorder) RegistrationCompleted() {}
func (noopRecorder) RegistrationCancelled() {}
func (noopRecorder) RegistrationRestarted() {}
func (noopRecorder) PhoneValidated(bool)    {}

// Flow implements the registration state machine over a session store.
// All methods are safe for concurrent use across distinct users; the
// transport serializes updates per user.
type Flow struct {
	store *Store
	texts Texts
	rec   Recorder
	now   func() time.Time
	newID func() string
}

// NewFlow wires the state machine to its session store and templates.
// A nil recorder disables counters.
func NewFlow(store *Store, texts Texts, rec Recorder) *Flow {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &Flow{
		store: store,
		texts: texts,
		rec:   rec,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Begin starts (or restarts) a registration: fields are wiped and the
// user is prompted for their full name.
func (f *Flow) Begin(userID int64) Reply {
	f.store.update(userID, func(s *Session) {
		s.Step = StepName
		s.Name = ""
		s.Phone = ""
	})
	f.rec.RegistrationStarted()
	return Reply{Text: f.texts.AskName, Keyboard: KeyboardCancel}
}

// Cancel aborts the registration from any step and returns the user to
// idle with all fields cleared. Cancelling an idle session is a no-op
// apart from the acknowledgment.
func (f *Flow) Cancel(userID int64) Reply {
	if f.store.InProgress(userID) {
		f.rec.RegistrationCancelled()
	}
	f.store.Reset(userID)
	return Reply{Text: f.texts.Cancelled, Keyboard: KeyboardMain}
}

// Restart discards everything collected so far and prompts for the name
// again. Accepted from any step so stale inline keyboards stay harmless;
// only an active registration counts as restarted.
func (f *Flow) Restart(userID int64) Reply {
	if f.store.InProgress(userID) {
		f.rec.RegistrationRestarted()
	}
	f.store.update(userID, func(s *Session) {
		s.Step = StepName
		s.Name = ""
		s.Phone = ""
	})
	return Reply{Text: f.texts.AskName, Keyboard: KeyboardCancel}
}

// SubmitName stores the full name and advances to the phone step. The
// second return value is false when the user is not at the name step.
func (f *Flow) SubmitName(userID int64, name string) (Reply, bool) {
	if f.store.Step(userID) != StepName {
		return Reply{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Reply{Text: f.texts.AskName, Keyboard: KeyboardCancel}, true
	}
	f.store.update(userID, func(s *Session) {
		s.Name = name
		s.Step = StepPhone
	})
	return Reply{Text: f.texts.AskPhone, Keyboard: KeyboardCancel}, true
}

// SubmitPhone validates the phone number. A rejected number keeps the
// user at the phone step (the name survives) and reprompts with format
// examples; a valid one advances to the confirmation summary.
func (f *Flow) SubmitPhone(userID int64, raw string) (Reply, bool) {
	if f.store.Step(userID) != StepPhone {
		return Reply{}, false
	}
	phone, err := NormalizePhone(raw)
	f.rec.PhoneValidated(err == nil)
	if err != nil {
		return Reply{Text: f.texts.PhoneInvalid, Keyboard: KeyboardCancel}, true
	}
	f.store.update(userID, func(s *Session) {
		s.Phone = phone
		s.Step = StepConfirm
	})
	sess := f.store.Get(userID)
	return Reply{
		Text: fmt.Sprintf(f.texts.Summary, sess.Name, sess.Phone),
		Choices: []Choice{
			{Key: ChoiceConfirm, Label: f.texts.ConfirmLabel},
			{Key: ChoiceRestart, Label: f.texts.RestartLabel},
		},
	}, true
}

// Confirm accepts the summary and advances to the payment step, asking
// the transport to replace the summary with the payment instructions.
func (f *Flow) Confirm(userID int64) (Reply, bool) {
	if f.store.Step(userID) != StepConfirm {
		return Reply{}, false
	}
	f.store.update(userID, func(s *Session) {
		s.Step = StepPayment
	})
	return Reply{Text: f.texts.Payment, Edit: true}, true
}

// ReceiptMissing reprompts when a payment-step update carries no
// attachment. State is unchanged.
func (f *Flow) ReceiptMissing(userID int64) (Reply, bool) {
	if f.store.Step(userID) != StepPayment {
		return Reply{}, false
	}
	return Reply{Text: f.texts.ReceiptMissing}, true
}

// SubmitReceipt assembles the final Submission from the session and the
// receipt attachment, then resets the session to idle. The caller owns
// forwarding the submission and delivering the acknowledgment reply.
func (f *Flow) SubmitReceipt(userID int64, user UserMeta, att Attachment) (Submission, Reply, bool) {
	sess := f.store.Get(userID)
	if sess.Step != StepPayment {
		return Submission{}, Reply{}, false
	}
	sub := Submission{
		ID:          f.newID(),
		Name:        sess.Name,
		Phone:       sess.Phone,
		User:        user,
		Attachment:  att,
		SubmittedAt: f.now(),
	}
	f.store.Reset(userID)
	f.rec.RegistrationCompleted()
	return sub, Reply{Text: f.texts.Accepted, Keyboard: KeyboardMain}, true
}
