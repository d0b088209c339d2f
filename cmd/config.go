package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	SMTPHost               string
	SMTPPort               string
	SMTPUser               string
	SMTPPassword           string
	MailFrom               string
	MailFromName           string
	MailerURL              string
	MailerAPIKey           string
	SiteBaseURL            string
}
