package models

// TwilioConfig holds simulated Twilio connection settings.
type TwilioConfig struct {
	AccountSID string `json:"accountSid"`
	AuthToken  string `json:"authToken"`
	FromNumber string `json:"fromNumber"`
}

// SMTPConfig holds simulated SMTP connection settings.
type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ConnectorStatus reports which integrations are currently connected.
type ConnectorStatus struct {
	Gmail    bool `json:"gmail"`
	Twilio   bool `json:"twilio"`
	SMTP     bool `json:"smtp"`
	ManyChat bool `json:"manychat"`
	Vbout    bool `json:"vbout"`
}
