package mail

import "gopkg.in/gomail.v2"

type RendezVousEmailData struct {
	Prenom     string
	NomComplet string
	Type       string
	Programme  string
	Date       string // DD/MM/YYYY
	Heure      string
	Duree      int
	Lieu       string
	Adresse    string
	LienVisio  string
	Telephone  bool
	Reference  string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	// send delivers a built message; DialAndSend on the SMTP dialer by default.
	send func(m *gomail.Message) error
}
