package contact

import "context"

// Status is the submission state of a form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Notice keys (resolved through the locale bundle by the templates).
const (
	NoticeInvalid = "contact.notice.invalid"
	NoticeSuccess = "contact.notice.success"
	NoticeFailure = "contact.notice.failure"
)

// Form is the contact form controller: a draft plus its submission state.
type Form struct {
	Draft    Draft
	Status   Status
	Notice   string
	Problems Problems
	Err      error
}

// NewForm returns an idle form over d.
func NewForm(d Draft) *Form {
	return &Form{Draft: d, Status: StatusIdle}
}

// Sending reports whether a submission is outstanding.
func (f *Form) Sending() bool { return f.Status == StatusSending }

// Submit validates the draft and, if valid, sends it once. Validation
// failures make no call. Success clears the draft; failure keeps it so the
// visitor can resubmit. A form that is already sending ignores the call.
func (f *Form) Submit(ctx context.Context, s Sender) Status {
	if f.Sending() {
		return f.Status
	}
	f.Draft = f.Draft.Normalize()
	f.Problems = f.Draft.Validate()
	f.Err = nil
	if len(f.Problems) > 0 {
		f.Status = StatusIdle
		f.Notice = NoticeInvalid
		return f.Status
	}

	f.Status = StatusSending
	f.Notice = ""
	if err := s.Send(ctx, f.Draft); err != nil {
		f.Status = StatusError
		f.Notice = NoticeFailure
		f.Err = err
		return f.Status
	}
	f.Status = StatusSuccess
	f.Notice = NoticeSuccess
	f.Draft = Draft{}
	return f.Status
}
