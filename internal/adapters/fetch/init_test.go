package fetch

import (
	"github.com/theleaguehq/leaguecap/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}
