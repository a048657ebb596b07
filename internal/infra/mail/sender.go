package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/formapro-console/internal/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var typeLabels = map[entity.TypeRendezVous]string{
	entity.TypePositionnement: "entretien de positionnement",
	entity.TypeInformation:    "rendez-vous d'information",
	entity.TypeInscription:    "rendez-vous d'inscription",
	entity.TypeSuivi:          "rendez-vous de suivi",
}

var lieuLabels = map[entity.LieuRendezVous]string{
	entity.LieuPresentiel: "en présentiel",
	entity.LieuVisio:      "en visioconférence",
	entity.LieuTelephone:  "par téléphone",
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
	s.send = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

func (s *EmailSender) SendConfirmation(rv entity.RendezVous) error {
	subject := fmt.Sprintf("Votre %s du %s est bien enregistré", typeLabels[rv.Type], frenchDate(rv.Date))
	return s.sendTemplate(rv, "confirmation.html", subject)
}

func (s *EmailSender) SendReminder(rv entity.RendezVous) error {
	subject := fmt.Sprintf("Rappel : votre rendez-vous demain à %s", rv.Heure)
	return s.sendTemplate(rv, "rappel.html", subject)
}

func (s *EmailSender) sendTemplate(rv entity.RendezVous, name, subject string) error {
	if rv.Client.Email == "" {
		return fmt.Errorf("rendez-vous %s sans email client", rv.ID)
	}

	body, err := Render(name, NewRendezVousEmailData(rv))
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", rv.Client.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("envoi SMTP impossible: %w", err)
	}
	return nil
}

// Render executes one of the embedded templates.
func Render(name string, data RendezVousEmailData) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("erreur de template %s: %w", name, err)
	}
	return body.String(), nil
}

func NewRendezVousEmailData(rv entity.RendezVous) RendezVousEmailData {
	return RendezVousEmailData{
		Prenom:     rv.Client.Prenom,
		NomComplet: rv.Client.FullName(),
		Type:       typeLabels[rv.Type],
		Programme:  rv.ProgrammeTitre,
		Date:       frenchDate(rv.Date),
		Heure:      rv.Heure,
		Duree:      rv.Duree,
		Lieu:       lieuLabels[rv.Lieu],
		Adresse:    rv.Adresse,
		LienVisio:  rv.LienVisio,
		Telephone:  rv.Lieu == entity.LieuTelephone,
		Reference:  rv.ID,
	}
}

func frenchDate(date string) string {
	d, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
