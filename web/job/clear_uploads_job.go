// Package job contains the scheduled maintenance jobs of comicshelf.
package job

import (
	"os"
	"path/filepath"
	"time"

	"comicshelf/config"
	"comicshelf/logger"
	"comicshelf/util/common"
)

// staleAfter is how long a staged upload may linger before the sweep
// removes it. Scan requests discard their own staging file; this catches
// files orphaned by crashes or aborted requests.
const staleAfter = 24 * time.Hour

type ClearUploadsJob struct{}

func NewClearUploadsJob() *ClearUploadsJob {
	return new(ClearUploadsJob)
}

// Run is an interface method of the cron Job interface. A panic here must
// not take down the scheduler.
func (j *ClearUploadsJob) Run() {
	defer common.Recover("clear uploads job")

	dir := config.GetUploadFolder()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("clear uploads job err:", err)
		}
		return
	}

	cutoff := time.Now().Add(-staleAfter)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warning("clear uploads job err:", err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logger.Warning("clear uploads job err:", err)
		}
	}
}
