package cmd

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	RedisAddr     string
	OfferChannel  string
	JobServiceURL string
	CourierID     string
	AuthToken     string
	StartLat      string
	StartLon      string
}
