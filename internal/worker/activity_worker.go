package worker

import (
	"github.com/apexautomovers/quote-service/internal/service"
)

// StartActivityWorker subscribes the activity recorder to quote events.
func StartActivityWorker(recorder *service.ActivityRecorder) {
	if recorder == nil {
		return
	}
	recorder.RegisterHandlers()
}
