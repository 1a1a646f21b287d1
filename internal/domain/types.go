package domain

// Author identifies who logged time.
type Author struct {
    EmailAddress string `json:"emailAddress"`
    DisplayName  string `json:"displayName"`
}

// IssueDescription annotates a worklog entry with the issue it was logged
// against. Parent fields are omitted entirely when the issue has no parent.
type IssueDescription struct {
    Key         string  `json:"key"`
    Title       string  `json:"title"`
    Description string  `json:"description"`
    ParentKey   *string `json:"parentKey,omitempty"`
    ParentTitle *string `json:"parentTitle,omitempty"`
}

// WorklogEntry is one logged time record, already annotated with its issue.
type WorklogEntry struct {
    Comment          string           `json:"comment"`
    Started          string           `json:"started"`
    TimeSpent        string           `json:"timeSpent"`
    TimeSpentSeconds int              `json:"timeSpentSeconds"`
    Author           Author           `json:"author"`
    Description      IssueDescription `json:"description"`
    ID               string           `json:"id"`
}

// DaySummary is the synthetic element appended after an author's real
// entries for one date, summing that author's day.
type DaySummary struct {
    TotalTimeSpentSeconds   int    `json:"totalTimeSpentSeconds"`
    TotalTimeSpentFormatted string `json:"totalTimeSpentFormatted"`
}

// DateBucket maps author email to that author's entries for one date,
// terminated by a DaySummary. Element types are WorklogEntry and DaySummary;
// consumers rely on the summary being the trailing list element, so the two
// share one list.
type DateBucket map[string][]any

// Report is the aggregated response: distinct authors plus worklogs keyed by
// ISO date. JSON marshaling emits map keys sorted, so dates appear in
// chronological order on the wire.
type Report struct {
    Authors  []Author              `json:"authors"`
    Worklogs map[string]DateBucket `json:"worklogs"`
}
