// Package digest periodically summarizes recent Historial activity.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
	"github.com/Dan9191/credit-simulator/internal/utils/email"
)

// Window is how far back each digest looks.
const Window = 24 * time.Hour

// Mailer delivers a finished digest.
type Mailer interface {
	SendDigest(to, period string, lines []email.DigestLine) error
}

// Digest counts Historial entries per entidad and accion on a schedule.
type Digest struct {
	repo   *repository.Repository
	mailer Mailer
	to     string
	log    *logrus.Logger
	now    func() time.Time
	cron   *cron.Cron
}

func New(repo *repository.Repository, mailer Mailer, to string, log *logrus.Logger) *Digest {
	return &Digest{
		repo:   repo,
		mailer: mailer,
		to:     to,
		log:    log,
		now:    time.Now,
		cron:   cron.New(cron.WithLogger(cron.PrintfLogger(log))),
	}
}

// Summary groups the entries recorded since the given time.
func (d *Digest) Summary(ctx context.Context, since time.Time) ([]email.DigestLine, error) {
	var lines []email.DigestLine
	err := d.repo.DB(ctx).Model(&models.Historial{}).
		Select("entidad, accion, COUNT(*) AS total").
		Where("fecha >= ?", since).
		Group("entidad, accion").
		Order("entidad, accion").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize historial: %w", err)
	}
	return lines, nil
}

// Run builds one digest for the last Window, logs it and mails it.
func (d *Digest) Run(ctx context.Context) error {
	now := d.now()
	lines, err := d.Summary(ctx, now.Add(-Window))
	if err != nil {
		return err
	}

	var total int64
	for _, l := range lines {
		total += l.Total
		d.log.WithFields(logrus.Fields{
			"entidad": l.Entidad,
			"accion":  l.Accion,
			"total":   l.Total,
		}).Info("Audit digest entry")
	}
	d.log.Infof("Audit digest: %d operations in the last %s", total, Window)

	period := fmt.Sprintf("%s a %s", now.Add(-Window).Format("2006-01-02 15:04"), now.Format("2006-01-02 15:04"))
	return d.mailer.SendDigest(d.to, period, lines)
}

// Start schedules Run with a standard five-field cron spec.
func (d *Digest) Start(schedule string) error {
	_, err := d.cron.AddFunc(schedule, func() {
		if err := d.Run(context.Background()); err != nil {
			d.log.Errorf("Audit digest failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}
	d.cron.Start()
	d.log.Infof("Audit digest scheduled: %s", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running digest to finish.
func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
}
