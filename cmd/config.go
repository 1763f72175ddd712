package cmd

type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	PaymentGateBaseURL    string
	SystemActorID         string
	ReconcileCronSchedule string
	ExchangeRateNgnPerUsd string
}
