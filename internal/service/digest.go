package service

import (
	"context"

	"github.com/davron17/finflow/internal/models"
)

// RunDailyDigest scans every user's data for spending anomalies and
// forecasted cash gaps and emails the findings. Per-user failures are logged
// and skipped so one bad dataset cannot stall the whole run.
func (s *Service) RunDailyDigest(ctx context.Context) {
	if !s.mailer.Enabled() {
		s.log.Debug("SMTP not configured, skipping daily digest")
		return
	}

	users, err := s.repo.ListUsers()
	if err != nil {
		s.log.Errorf("Daily digest aborted: %v", err)
		return
	}

	for _, user := range users {
		s.digestForUser(ctx, user)
	}
	s.log.Infof("Daily digest completed for %d user(s)", len(users))
}

func (s *Service) digestForUser(ctx context.Context, user models.User) {
	txns, err := s.repo.ListTransactionsByUser(user.ID)
	if err != nil {
		s.log.Errorf("Daily digest: failed to load transactions for %s: %v", user.Email, err)
		return
	}
	if len(txns) == 0 {
		return
	}

	if anomalies := s.engine.DetectAnomalies(txns); len(anomalies) > 0 {
		if err := s.mailer.SendAnomalyDigest(user.Email, user.Username, anomalies); err != nil {
			s.log.Errorf("Daily digest: anomaly mail for %s failed: %v", user.Email, err)
		}
	}

	daily, err := s.engine.AggregateDaily(txns, 0)
	if err != nil {
		return
	}
	points, _, err := s.engine.Forecast(ctx, daily, s.config.ForecastHorizonDays)
	if err != nil {
		s.log.Errorf("Daily digest: forecast for %s failed: %v", user.Email, err)
		return
	}
	if gaps := s.engine.DetectCashGaps(points); len(gaps) > 0 {
		if err := s.mailer.SendCashGapAlert(user.Email, user.Username, gaps); err != nil {
			s.log.Errorf("Daily digest: cash gap mail for %s failed: %v", user.Email, err)
		}
	}
}
