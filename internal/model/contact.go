package model

import "time"

// ContactStatus is the triage state of a contact message.
type ContactStatus string

const (
	ContactNew        ContactStatus = "new"
	ContactInProgress ContactStatus = "in_progress"
	ContactResolved   ContactStatus = "resolved"
	ContactSpam       ContactStatus = "spam"
)

// ContactSubject is one of the six fixed subjects offered by the contact form.
type ContactSubject string

const (
	SubjectGeneralQuestion ContactSubject = "general_question"
	SubjectTechnicalIssue  ContactSubject = "technical_issue"
	SubjectSuggestion      ContactSubject = "suggestion"
	SubjectBugReport       ContactSubject = "bug_report"
	SubjectProRequest      ContactSubject = "pro_request"
	SubjectOther           ContactSubject = "other"
)

// ContactSubjects lists every accepted subject value.
var ContactSubjects = []ContactSubject{
	SubjectGeneralQuestion,
	SubjectTechnicalIssue,
	SubjectSuggestion,
	SubjectBugReport,
	SubjectProRequest,
	SubjectOther,
}

// ValidContactSubject reports whether s is one of the fixed subjects.
func ValidContactSubject(s ContactSubject) bool {
	for _, v := range ContactSubjects {
		if s == v {
			return true
		}
	}
	return false
}

// ValidContactStatus reports whether s is a known triage state.
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactNew, ContactInProgress, ContactResolved, ContactSpam:
		return true
	}
	return false
}

// ContactMessage is a persisted support-inbox message. Messages are never
// deleted; admins move them through statuses instead.
type ContactMessage struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Subject      ContactSubject `json:"subject"`
	Body         string         `json:"body"`
	Status       ContactStatus  `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	ProcessedAt  *time.Time     `json:"processed_at,omitempty"`
	SourceIP     string         `json:"source_ip,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	ResponseSent bool           `json:"response_sent"`
}

// SubjectCount is a per-subject tally used by contact analytics.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// StatusCount is a per-status tally used by contact analytics.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ContactAnalytics aggregates contact activity over a trailing period.
type ContactAnalytics struct {
	TotalContacts int            `json:"total_contacts"`
	BySubject     []SubjectCount `json:"by_subject"`
	ByStatus      []StatusCount  `json:"by_status"`
	PeriodDays    int            `json:"period_days"`
}
