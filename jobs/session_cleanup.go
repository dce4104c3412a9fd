package jobs

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"saldo/models"
)

// StartSessionCleanup periodically deletes expired launch sessions. Player
// and transaction rows are never touched; only the session table grows
// unbounded without this.
func StartSessionCleanup(db *gorm.DB, log *logrus.Logger, interval time.Duration) chan<- struct{} {
	stop := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				res := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
				if res.Error != nil {
					log.WithError(res.Error).Error("session cleanup failed")
					continue
				}
				if res.RowsAffected > 0 {
					log.WithField("deleted", res.RowsAffected).Info("expired sessions removed")
				}
			}
		}
	}()

	return stop
}
