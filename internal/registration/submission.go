package registration

import "time"

// AttachmentKind tags the type of the payment receipt attachment.
type AttachmentKind string

const (
	// AttachmentPhoto marks a receipt sent as a photo.
	AttachmentPhoto AttachmentKind = "photo"
	// AttachmentDocument marks a receipt sent as a file.
	AttachmentDocument AttachmentKind = "document"
)

// Attachment references an uploaded receipt by its transport file ID.
type Attachment struct {
	Kind   AttachmentKind
	FileID string
}

// UserMeta carries the identity of the submitting Telegram user.
type UserMeta struct {
	ID       int64
	Username string
	FullName string
}

// Submission is the completed registration handed to the operator
// forwarder. It is ephemeral: once forwarded (or lost) it is gone.
type Submission struct {
	ID          string
	Name        string
	Phone       string
	User        UserMeta
	Attachment  Attachment
	SubmittedAt time.Time
}
