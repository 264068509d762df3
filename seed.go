package ledgergo

import (
	"time"

	"github.com/rs/zerolog"
)

// Seed builds a central bank from a parsed config: the clock starts at
// cfg.Start (today when absent) and every configured bank is
// registered in file order.
func Seed(cfg *Config, log zerolog.Logger, metrics *Metrics) (*CentralBank, error) {
	start := time.Now().UTC()
	if cfg.Start != "" {
		parsed, err := time.Parse("2006-01-02", cfg.Start)
		if err != nil {
			return nil, errValidation("start", "must be a YYYY-MM-DD date")
		}
		start = parsed
	}

	cb, err := NewCentralBank(start, log, metrics)
	if err != nil {
		return nil, err
	}
	for _, bc := range cfg.Banks {
		req, err := bc.Req()
		if err != nil {
			return nil, err
		}
		if _, err := cb.RegisterBank(req); err != nil {
			return nil, err
		}
	}
	return cb, nil
}
