package scheduler

import (
	"time"

	"github.com/avdeev/task-service/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// reminderWindow is how far ahead the scan looks for tasks coming due.
const reminderWindow = 24 * time.Hour

// DueTaskLister lists unfinished tasks due inside a time window
type DueTaskLister interface {
	ListTasksDueBetween(from, to time.Time) ([]models.TaskReminder, error)
}

// ReminderSender delivers a due-task reminder to a single recipient
type ReminderSender interface {
	SendDueReminder(to, username, title string, dueDate time.Time) error
}

// Reminder periodically scans for tasks coming due and emails their owners
type Reminder struct {
	repo   DueTaskLister
	sender ReminderSender
	log    *logrus.Logger
	cron   *cron.Cron
}

// NewReminder initializes a reminder scheduler
func NewReminder(repo DueTaskLister, sender ReminderSender, log *logrus.Logger) *Reminder {
	return &Reminder{
		repo:   repo,
		sender: sender,
		log:    log,
		cron:   cron.New(),
	}
}

// Start schedules the hourly reminder scan
func (r *Reminder) Start() error {
	if _, err := r.cron.AddFunc("@hourly", r.Run); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info("Reminder scheduler started")
	return nil
}

// Stop halts the scheduler; running jobs finish first
func (r *Reminder) Stop() {
	r.cron.Stop()
}

// Run performs a single reminder scan. Delivery failures are logged and do
// not stop the remaining reminders.
func (r *Reminder) Run() {
	now := time.Now()
	reminders, err := r.repo.ListTasksDueBetween(now, now.Add(reminderWindow))
	if err != nil {
		r.log.Errorf("Reminder scan failed: %v", err)
		return
	}

	sent := 0
	for _, rem := range reminders {
		if rem.Email == "" {
			continue
		}
		if err := r.sender.SendDueReminder(rem.Email, rem.Username, rem.Title, rem.DueDate); err != nil {
			continue
		}
		sent++
	}

	r.log.Infof("Reminder scan complete: %d due, %d sent", len(reminders), sent)
}
