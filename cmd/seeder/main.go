package main

import (
	"flag"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/russianZAK/ledgergo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Seeds a central bank from config and runs a small month-long
// scenario against the first configured bank, writing its account
// statement next to the config.
func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg ledgergo.Config
	cfp := flag.String("config", "config.yml", "path to configuration file")
	out := flag.String("out", "statement.pdf", "path to write the sample statement")
	flag.Parse()
	cfgfl, err := os.Open(*cfp)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening config file")
	}
	if err = yaml.NewDecoder(cfgfl).Decode(&cfg); err != nil {
		logger.Fatal().Err(err).Msg("error decoding config file")
	}
	cfgfl.Close()

	metrics := ledgergo.NewMetrics("ledgergo")
	if err = metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Fatal().Err(err).Msg("error registering metrics")
	}

	cb, err := ledgergo.Seed(&cfg, logger, metrics)
	if err != nil {
		logger.Fatal().Err(err).Msg("error seeding central bank")
	}
	if len(cb.Banks()) == 0 {
		logger.Fatal().Msg("config declares no banks")
	}
	bank := cb.Banks()[0]

	client, err := ledgergo.NewClient(ledgergo.ClientReq{
		Name:     "Ivan",
		Surname:  "Petrov",
		Address:  "Arbat st. 1",
		Passport: "4507 123456",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating client")
	}
	if err = bank.AddClient(client); err != nil {
		logger.Fatal().Err(err).Msg("error registering client")
	}

	acct, err := bank.OpenDebitAccount(client.ID())
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening account")
	}
	if _, err = bank.TopUp(acct.ID(), decimal.NewFromInt(4000)); err != nil {
		logger.Fatal().Err(err).Msg("error topping up")
	}
	if err = cb.AdvanceTo(cb.Now().AddDate(0, 1, 0)); err != nil {
		logger.Fatal().Err(err).Msg("error advancing clock")
	}
	logger.Info().Str("balance", acct.Balance().String()).Msg("balance after one month")

	stmt, err := os.Create(*out)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating statement file")
	}
	defer stmt.Close()
	if err = bank.Statement(stmt, acct.ID()); err != nil {
		logger.Fatal().Err(err).Msg("error rendering statement")
	}
	logger.Info().Str("path", *out).Msg("statement written")
}
