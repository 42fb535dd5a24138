package models

import (
	"time"
)

// ReminderRecord tracks one open bookkeeping task per company
type ReminderRecord struct {
	Key             string     `json:"key"`
	CompanyNo       string     `json:"companyNo,omitempty"`
	CompanyName     string     `json:"companyName,omitempty"`
	Bookkeeper      string     `json:"bookkeeper,omitempty"`
	BookkeeperEmail string     `json:"bookkeeperEmail,omitempty"`
	Email           string     `json:"email,omitempty"`
	Status          string     `json:"status,omitempty"`
	Period          string     `json:"period,omitempty"`
	Reference       string     `json:"reference,omitempty"`
	Active          bool       `json:"active"`
	LastNotifiedAt  *time.Time `json:"lastNotifiedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// StatusCompleted deactivates a record when set as its status
const StatusCompleted = "Completed"

// RecipientEmail resolves the notification target, preferring the
// bookkeeper's address over the generic one. Empty means no target.
func (r *ReminderRecord) RecipientEmail() string {
	if r.BookkeeperEmail != "" {
		return r.BookkeeperEmail
	}
	return r.Email
}

// CompanyLabel returns the most descriptive identity string available
func (r *ReminderRecord) CompanyLabel() string {
	switch {
	case r.CompanyName != "" && r.CompanyNo != "":
		return r.CompanyName + " (" + r.CompanyNo + ")"
	case r.CompanyName != "":
		return r.CompanyName
	default:
		return r.CompanyNo
	}
}

// Matches reports whether the record matches either identity field.
// Matching is an OR across companyNo and companyName; empty inputs never match.
func (r *ReminderRecord) Matches(companyNo, companyName string) bool {
	if companyNo != "" && r.CompanyNo == companyNo {
		return true
	}
	if companyName != "" && r.CompanyName == companyName {
		return true
	}
	return false
}

// NotifiedOn reports whether the record was already notified on the
// given local calendar day.
func (r *ReminderRecord) NotifiedOn(day time.Time) bool {
	if r.LastNotifiedAt == nil {
		return false
	}
	y1, m1, d1 := r.LastNotifiedAt.Local().Date()
	y2, m2, d2 := day.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ReminderPayload is the create/update request body. Empty fields are
// treated as absent and never overwrite stored values.
type ReminderPayload struct {
	CompanyNo       string `json:"companyNo"`
	CompanyName     string `json:"companyName"`
	Bookkeeper      string `json:"bookkeeper"`
	BookkeeperEmail string `json:"bookkeeperEmail"`
	Email           string `json:"email"`
	Status          string `json:"status"`
	Period          string `json:"period"`
	Reference       string `json:"reference"`
}

// Key derives the stable identity: the company number when present,
// else the company name, suffixed with the reference when one is given.
func (p *ReminderPayload) Key() string {
	if p.CompanyNo != "" {
		return p.CompanyNo
	}
	key := p.CompanyName
	if p.Reference != "" {
		key += "/" + p.Reference
	}
	return key
}

// CompleteRequest identifies records to deactivate
type CompleteRequest struct {
	CompanyNo   string `json:"companyNo"`
	CompanyName string `json:"companyName"`
}
