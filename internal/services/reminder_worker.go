package services

import (
	"fmt"
	"log"
	"time"

	"booktrack/internal/store"

	"github.com/robfig/cron/v3"
)

// ReminderWorker runs the daily reminder sweep. Each sweep walks every
// record once and sends at most one email per record per calendar day.
type ReminderWorker struct {
	store store.Store
	email *EmailService
	hour  int
	cron  *cron.Cron
	now   func() time.Time
}

func NewReminderWorker(s store.Store, email *EmailService, hour int) *ReminderWorker {
	return &ReminderWorker{
		store: s,
		email: email,
		hour:  hour,
		now:   time.Now,
	}
}

// Start schedules the sweep once per day at the configured local hour.
func (w *ReminderWorker) Start() error {
	w.cron = cron.New()
	_, err := w.cron.AddFunc(fmt.Sprintf("0 %d * * *", w.hour), func() {
		sent, err := w.RunSweep()
		if err != nil {
			log.Printf("Daily reminder sweep failed: %v", err)
			return
		}
		log.Printf("Daily reminder sweep sent %d reminders", sent)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}
	w.cron.Start()
	return nil
}

// Stop halts the schedule. Running sweeps finish normally.
func (w *ReminderWorker) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// RunSweep is one full pass over all records. A single record's send
// failure never aborts the sweep; the collection is saved exactly once
// at the end, persisting whatever subset succeeded.
func (w *ReminderWorker) RunSweep() (int, error) {
	records := w.store.Load()
	now := w.now()
	sent := 0

	for i := range records {
		rec := &records[i]
		if !rec.Active {
			continue
		}
		if rec.NotifiedOn(now) {
			continue
		}
		if rec.RecipientEmail() == "" {
			continue
		}

		if err := w.email.SendReminder(*rec); err != nil {
			log.Printf("Failed to send reminder for %s: %v", rec.CompanyLabel(), err)
			continue
		}

		notifiedAt := now
		rec.LastNotifiedAt = &notifiedAt
		sent++
	}

	if err := w.store.Save(records); err != nil {
		return sent, fmt.Errorf("failed to persist sweep results: %w", err)
	}
	return sent, nil
}
