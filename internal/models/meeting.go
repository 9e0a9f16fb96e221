package models

const (
	MeetingDateLayout = "2006-01-02"
	MeetingTimeLayout = "15:04"

	MeetingTitleField = "title"
	MeetingDateField  = "meeting_date"
	MeetingTimeField  = "meeting_time"
)

// Meeting is an open document: besides the fields the service
// validates (title, meeting_date, meeting_time) it carries whatever
// extra fields the creation payload contained. The is_past and
// is_upcoming keys are computed at read time and never persisted.
type Meeting map[string]any

func (m Meeting) Title() string {
	s, _ := m[MeetingTitleField].(string)
	return s
}

func (m Meeting) Date() string {
	s, _ := m[MeetingDateField].(string)
	return s
}

func (m Meeting) Time() string {
	s, _ := m[MeetingTimeField].(string)
	return s
}
