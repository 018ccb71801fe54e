package domain

import "time"

// JournalEntryPosted is emitted after a post transaction commits. Audit and
// notification subsystems subscribe; the engine never blocks on them.
type JournalEntryPosted struct {
	EntryID     string    `json:"entryID"`
	TenantID    string    `json:"tenantID"`
	EntryNumber string    `json:"entryNumber"`
	PostedBy    string    `json:"postedBy"`
	PostedAt    time.Time `json:"postedAt"`
}
