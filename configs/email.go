package configs

type EmailConfig struct {
	SmtpHost     string `yaml:"smtp_host"`
	SmtpPort     int    `yaml:"smtp_port"`
	SmtpUsername string `yaml:"smtp_username"`
	SmtpPassword string `yaml:"smtp_password"`
	FromAddress  string `yaml:"from_address"`
}
