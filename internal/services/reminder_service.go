package services

import (
	"errors"
	"time"

	"booktrack/internal/models"
	"booktrack/internal/store"
)

// ErrMissingIdentity is returned when a request carries neither a
// company number nor a company name.
var ErrMissingIdentity = errors.New("companyNo or companyName is required")

// ReminderService is the CRUD surface over the record store. Every
// operation does a full load-mutate-save cycle against durable storage.
type ReminderService struct {
	store store.Store
	now   func() time.Time
}

func NewReminderService(s store.Store) *ReminderService {
	return &ReminderService{
		store: s,
		now:   time.Now,
	}
}

// Upsert creates a record for the payload's identity key, or merges the
// payload over the existing record with that key. Key and createdAt are
// preserved across updates; only non-empty payload fields overwrite.
func (s *ReminderService) Upsert(payload models.ReminderPayload) (models.ReminderRecord, error) {
	if payload.CompanyNo == "" && payload.CompanyName == "" {
		return models.ReminderRecord{}, ErrMissingIdentity
	}

	key := payload.Key()
	records := s.store.Load()

	for i := range records {
		if records[i].Key == key {
			mergePayload(&records[i], payload)
			if err := s.store.Save(records); err != nil {
				return models.ReminderRecord{}, err
			}
			return records[i], nil
		}
	}

	record := models.ReminderRecord{
		Key:             key,
		CompanyNo:       payload.CompanyNo,
		CompanyName:     payload.CompanyName,
		Bookkeeper:      payload.Bookkeeper,
		BookkeeperEmail: payload.BookkeeperEmail,
		Email:           payload.Email,
		Status:          payload.Status,
		Period:          payload.Period,
		Reference:       payload.Reference,
		Active:          payload.Status != models.StatusCompleted,
		CreatedAt:       s.now(),
	}
	records = append(records, record)
	if err := s.store.Save(records); err != nil {
		return models.ReminderRecord{}, err
	}
	return record, nil
}

// mergePayload copies the payload's non-empty fields onto the record.
// A status change re-derives the active flag so a record completed by
// one submission can be reopened by a later one.
func mergePayload(rec *models.ReminderRecord, payload models.ReminderPayload) {
	if payload.CompanyNo != "" {
		rec.CompanyNo = payload.CompanyNo
	}
	if payload.CompanyName != "" {
		rec.CompanyName = payload.CompanyName
	}
	if payload.Bookkeeper != "" {
		rec.Bookkeeper = payload.Bookkeeper
	}
	if payload.BookkeeperEmail != "" {
		rec.BookkeeperEmail = payload.BookkeeperEmail
	}
	if payload.Email != "" {
		rec.Email = payload.Email
	}
	if payload.Period != "" {
		rec.Period = payload.Period
	}
	if payload.Reference != "" {
		rec.Reference = payload.Reference
	}
	if payload.Status != "" {
		rec.Status = payload.Status
		rec.Active = payload.Status != models.StatusCompleted
	}
}

// Complete deactivates every record matching the identifier on either
// identity field. Matching is by value, not unique key, so several
// records can flip in one call. Zero matches is not an error.
func (s *ReminderService) Complete(req models.CompleteRequest) error {
	if req.CompanyNo == "" && req.CompanyName == "" {
		return ErrMissingIdentity
	}

	records := s.store.Load()
	for i := range records {
		if records[i].Matches(req.CompanyNo, req.CompanyName) {
			records[i].Active = false
			records[i].Status = models.StatusCompleted
		}
	}
	return s.store.Save(records)
}

// List returns the full collection in file order.
func (s *ReminderService) List() []models.ReminderRecord {
	return s.store.Load()
}
