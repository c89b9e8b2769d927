package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"SIAKAD/facerec"
)

// Start runs the background gallery reload so encodings written by other
// application instances get picked up without a restart. Reload failures are
// logged and retried on the next tick.
func Start(engine *facerec.Engine, everyMinutes int) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)

	_, err := s.Every(everyMinutes).Minutes().Do(func() {
		if err := engine.Reload(); err != nil {
			log.Printf("gallery reload failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("failed to schedule gallery reload: %v", err)
	}

	s.StartAsync()
	return s
}
