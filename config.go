package ledgergo

import (
	"github.com/shopspring/decimal"
)

// Config is the yaml shape consumed by the seeder. Decimal fields are
// strings so rates like "0.05" survive parsing exactly.
type Config struct {
	Start string       `yaml:"start"`
	Banks []BankConfig `yaml:"banks"`
}

type BankConfig struct {
	Name                  string `yaml:"name"`
	DebitRate             string `yaml:"debit_rate"`
	DepositRateUnder50K   string `yaml:"deposit_rate_under_50k"`
	DepositRateUnder100K  string `yaml:"deposit_rate_under_100k"`
	DepositRate100KPlus   string `yaml:"deposit_rate_100k_plus"`
	CreditCommission      string `yaml:"credit_commission"`
	UnverifiedRestriction string `yaml:"unverified_restriction"`
	CreditLimit           string `yaml:"credit_limit"`
}

// Req converts the yaml shape into a BankReq, failing on any field
// that does not parse as a decimal.
func (c BankConfig) Req() (BankReq, error) {
	req := BankReq{Name: c.Name}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"debit_rate", c.DebitRate, &req.DebitRate},
		{"deposit_rate_under_50k", c.DepositRateUnder50K, &req.DepositRateUnder50K},
		{"deposit_rate_under_100k", c.DepositRateUnder100K, &req.DepositRateUnder100K},
		{"deposit_rate_100k_plus", c.DepositRate100KPlus, &req.DepositRate100KPlus},
		{"credit_commission", c.CreditCommission, &req.CreditCommission},
		{"unverified_restriction", c.UnverifiedRestriction, &req.UnverifiedRestriction},
		{"credit_limit", c.CreditLimit, &req.CreditLimit},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return BankReq{}, errValidation(f.name, "must be a decimal number")
		}
		*f.dst = d
	}
	return req, nil
}
