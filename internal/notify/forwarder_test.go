package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/baikal-tours/signup-bot/internal/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

type sentItem struct {
	to   tele.Recipient
	what interface{}
}

type fakeAPI struct {
	sent    []sentItem
	failAt  map[int]error // 0-based call index -> error
	callNum int
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	idx := f.callNum
	f.callNum++
	if err, ok := f.failAt[idx]; ok {
		return nil, err
	}
	f.sent = append(f.sent, sentItem{to: to, what: what})
	return &tele.Message{}, nil
}

type fakeCounter struct{ n int }

func (c *fakeCounter) Inc() { c.n++ }

func sampleSubmission() registration.Submission {
	return registration.Submission{
		ID:    "sub-42",
		Name:  "Ivan Petrov",
		Phone: "+79123456789",
		User: registration.UserMeta{
			ID:       100500,
			Username: "ivan_p",
			FullName: "Ivan P",
		},
		Attachment:  registration.Attachment{Kind: registration.AttachmentPhoto, FileID: "file-1"},
		SubmittedAt: time.Date(2026, 2, 25, 14, 30, 0, 0, time.UTC),
	}
}

func TestForwardSendsSummaryAndAttachment(t *testing.T) {
	api := &fakeAPI{}
	f := New(api, Options{OperatorID: 777, Price: "79 000 ₽", Deposit: "20 000 ₽"})

	f.Forward(context.Background(), sampleSubmission())

	require.Len(t, api.sent, 2)
	assert.Equal(t, tele.ChatID(777), api.sent[0].to)

	text, ok := api.sent[0].what.(string)
	require.True(t, ok, "first send should be the summary text")
	assert.Contains(t, text, "+79123456789")
	assert.Contains(t, text, "Ivan Petrov")
	assert.Contains(t, text, `@ivan\_p`)
	assert.Contains(t, text, "25.02.2026 14:30")
	assert.Contains(t, text, "79 000 ₽")
	assert.Contains(t, text, "20 000 ₽")
	assert.Contains(t, text, "sub-42")
	assert.Contains(t, text, "фото")

	photo, ok := api.sent[1].what.(*tele.Photo)
	require.True(t, ok, "second send should be the photo")
	assert.Equal(t, "file-1", photo.File.FileID)
	assert.Equal(t, "Ivan Petrov", photo.Caption)
}

func TestForwardDocumentAttachment(t *testing.T) {
	api := &fakeAPI{}
	f := New(api, Options{OperatorID: 777, Price: "p", Deposit: "d"})

	sub := sampleSubmission()
	sub.Attachment = registration.Attachment{Kind: registration.AttachmentDocument, FileID: "doc-9"}
	f.Forward(context.Background(), sub)

	require.Len(t, api.sent, 2)
	doc, ok := api.sent[1].what.(*tele.Document)
	require.True(t, ok)
	assert.Equal(t, "doc-9", doc.File.FileID)
}

func TestForwardSummaryFailureSendsErrorNote(t *testing.T) {
	api := &fakeAPI{failAt: map[int]error{0: errors.New("telegram: 502")}}
	counter := &fakeCounter{}
	f := New(api, Options{OperatorID: 777, Price: "p", Deposit: "d", Failures: counter})

	f.Forward(context.Background(), sampleSubmission())

	// The only delivered message is the error note.
	require.Len(t, api.sent, 1)
	note, ok := api.sent[0].what.(string)
	require.True(t, ok)
	assert.Contains(t, note, "sub-42")
	assert.Contains(t, note, "502")
	assert.Equal(t, 1, counter.n)
}

func TestForwardAttachmentFailureSendsErrorNote(t *testing.T) {
	api := &fakeAPI{failAt: map[int]error{1: errors.New("boom")}}
	f := New(api, Options{OperatorID: 777, Price: "p", Deposit: "d"})

	f.Forward(context.Background(), sampleSubmission())

	require.Len(t, api.sent, 2)
	note, ok := api.sent[1].what.(string)
	require.True(t, ok)
	assert.True(t, strings.Contains(note, "boom"))
}

func TestForwardDoubleFailureIsSwallowed(t *testing.T) {
	api := &fakeAPI{failAt: map[int]error{
		0: errors.New("primary down"),
		1: errors.New("note down"),
	}}
	counter := &fakeCounter{}
	f := New(api, Options{OperatorID: 777, Price: "p", Deposit: "d", Failures: counter})

	// Must not panic or surface anything.
	f.Forward(context.Background(), sampleSubmission())

	assert.Empty(t, api.sent)
	assert.Equal(t, 1, counter.n)
}

func TestForwardSkipsWithoutOperator(t *testing.T) {
	api := &fakeAPI{}
	f := New(api, Options{Price: "p", Deposit: "d"})

	f.Forward(context.Background(), sampleSubmission())
	assert.Empty(t, api.sent)
}

func TestForwardErrorNoteTruncatesLongErrors(t *testing.T) {
	long := strings.Repeat("x", 1000)
	api := &fakeAPI{failAt: map[int]error{0: errors.New(long)}}
	f := New(api, Options{OperatorID: 777, Price: "p", Deposit: "d"})

	f.Forward(context.Background(), sampleSubmission())

	require.Len(t, api.sent, 1)
	note := api.sent[0].what.(string)
	assert.Less(t, len(note), 600)
}

func TestStartupNoteBestEffort(t *testing.T) {
	api := &fakeAPI{failAt: map[int]error{0: errors.New("offline")}}
	f := New(api, Options{OperatorID: 777})

	// Failure is swallowed.
	f.Startup(context.Background())
	assert.Empty(t, api.sent)

	// Without an operator nothing is sent at all.
	api2 := &fakeAPI{}
	New(api2, Options{}).Startup(context.Background())
	assert.Empty(t, api2.sent)
}
