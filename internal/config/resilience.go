package config

import (
	"time"

	"github.com/P3CHR/TMS-Order-Sync/internal/retry"
)

// ResilienceConfig groups the retry budgets per call class. TMS fetches get
// a longer leash than sheet traffic because the backend occasionally stalls
// behind its PHP session layer.
type ResilienceConfig struct {
	TMSRequest retry.Config
	SheetRead  retry.Config
	SheetWrite retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	TMSRequest: retry.Config{
		MaxRetries: 5,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    20 * time.Second,
	},
	SheetRead: retry.Config{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    15 * time.Second,
	},
	SheetWrite: retry.Config{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    30 * time.Second,
	},
}
