package store

import (
	"instagrowth/pkg/models"
)

// GrowthData returns the persisted growth record, zeroed on first access.
// Absence is never an error: the engine always gets a usable record.
func (s *Store) GrowthData() *models.GrowthRecord {
	record := models.NewGrowthRecord()
	if ok, err := s.Load(KeyGrowthData, record); err != nil || !ok {
		if err != nil {
			s.logger.WithError(err).Warn("growth data unreadable, using defaults")
		}
		return models.NewGrowthRecord()
	}
	if record.History == nil {
		record.History = []models.GrowthPoint{}
	}
	return record
}

// SaveGrowthData persists the growth record.
func (s *Store) SaveGrowthData(record *models.GrowthRecord) error {
	return s.Save(KeyGrowthData, record)
}

// Settings returns the persisted growth settings, defaulted on absence and
// normalized so unknown enum tags never escape the store.
func (s *Store) Settings() models.GrowthSettings {
	settings := models.DefaultGrowthSettings()
	if ok, err := s.Load(KeySettings, &settings); err != nil || !ok {
		if err != nil {
			s.logger.WithError(err).Warn("settings unreadable, using defaults")
		}
		return models.DefaultGrowthSettings()
	}
	settings.Normalize()
	if settings.FollowersPerDay <= 0 {
		settings.FollowersPerDay = models.DefaultGrowthSettings().FollowersPerDay
	}
	if settings.TargetGoal < 0 {
		settings.TargetGoal = 0
	}
	return settings
}

// SaveSettings persists the growth settings.
func (s *Store) SaveSettings(settings models.GrowthSettings) error {
	return s.Save(KeySettings, settings)
}

// Session returns the current session, or nil when absent or past the age
// ceiling. An expired record is removed as a side effect; a live one gets
// its last-activity bumped.
func (s *Store) Session() *models.Session {
	var session models.Session
	if ok, err := s.Load(KeyUserSession, &session); err != nil || !ok {
		return nil
	}

	now := s.now()
	if session.Expired(now) {
		if err := s.Remove(KeyUserSession); err != nil {
			s.logger.WithError(err).Warn("failed to remove expired session")
		}
		return nil
	}

	session.LastActivity = now
	if err := s.Save(KeyUserSession, &session); err != nil {
		s.logger.WithError(err).Warn("failed to bump session activity")
	}
	return &session
}

// SaveSession persists a session, stamping login and activity times.
func (s *Store) SaveSession(session *models.Session) error {
	now := s.now()
	if session.LoginTime.IsZero() {
		session.LoginTime = now
	}
	session.LastActivity = now
	return s.Save(KeyUserSession, session)
}

// Account returns the persisted account snapshot, or nil when absent.
func (s *Store) Account() *models.ProfileSnapshot {
	var snapshot models.ProfileSnapshot
	if ok, err := s.Load(KeyAccountData, &snapshot); err != nil || !ok {
		return nil
	}
	return &snapshot
}

// SaveAccount persists the account snapshot.
func (s *Store) SaveAccount(snapshot *models.ProfileSnapshot) error {
	return s.Save(KeyAccountData, snapshot)
}
