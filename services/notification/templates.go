package notification

import (
	"bytes"
	"html/template"
)

// mailData feeds both confirmation templates.
type mailData struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	FormattedDate string
	Time          string
	Duration      int
	FrontendURL   string
}

var clientTemplate = template.Must(template.New("client").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Confirmation de rendez-vous</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <p style="text-align: center;">
      <img src="{{.FrontendURL}}/assets/logohormelys1.webp" alt="Hormelys - Naturopathie" width="200" style="max-width: 200px;">
    </p>
    <h1 style="color: #A13D6C; text-align: center;">Rendez-vous confirmé !</h1>
    <p>Bonjour <strong>{{.FirstName}}</strong>,</p>
    <p>Votre rendez-vous découverte de <strong>{{.Duration}} minutes</strong> par téléphone avec <strong>Nathalia</strong> a été confirmé avec succès.</p>
    <div style="background-color: #f8f9fa; padding: 25px; border-radius: 12px; border-left: 5px solid #A13D6C;">
      <h3 style="margin-top: 0; color: #A13D6C;">Détails de votre rendez-vous :</h3>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Date :</td><td>{{.FormattedDate}}</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Heure :</td><td>{{.Time}}</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Durée :</td><td>{{.Duration}} minutes</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Type :</td><td>Appel téléphonique gratuit</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Votre numéro :</td><td>{{.Phone}}</td></tr>
      </table>
    </div>
    <p style="color: #0066cc; font-weight: bold;">Je vous appellerai au numéro que vous avez fourni : {{.Phone}}</p>
    <p style="color: #856404;"><strong>Important :</strong> si vous devez annuler ou reporter ce rendez-vous, merci de me contacter au moins 24h à l'avance.</p>
    <p style="margin-top: 30px;">
      À bientôt,<br>
      <strong style="color: #A13D6C;">Nathalia Laffont</strong><br>
      <em>Naturopathe certifiée</em>
    </p>
    <p style="text-align: center; color: #666; font-size: 14px; border-top: 2px solid #eee; padding-top: 20px;">
      <strong>Hormelys - Naturopathie</strong><br>
      280 Avenue de Lodève, 34150 Gignac<br>
      <a href="{{.FrontendURL}}" style="color: #A13D6C;">www.hormelys.com</a>
    </p>
  </div>
</body>
</html>`))

var practitionerTemplate = template.Must(template.New("practitioner").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Nouveau rendez-vous</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #A13D6C; text-align: center;">Nouveau rendez-vous découverte</h1>
    <p style="text-align: center; color: #666;">Un nouveau client a réservé un rendez-vous découverte.</p>
    <div style="background-color: #f8f9fa; padding: 25px; border-radius: 12px; border-left: 5px solid #28a745;">
      <h3 style="margin-top: 0; color: #28a745;">Informations du client :</h3>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555; width: 30%;">Prénom :</td><td>{{.FirstName}}</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Nom :</td><td>{{.LastName}}</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Email :</td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Téléphone :</td><td><a href="tel:{{.Phone}}" style="font-weight: bold;">{{.Phone}}</a></td></tr>
      </table>
    </div>
    <div style="background-color: #e3f2fd; padding: 25px; border-radius: 12px; border-left: 5px solid #2196f3;">
      <h3 style="margin-top: 0; color: #2196f3;">Détails du rendez-vous :</h3>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555; width: 30%;">Date :</td><td style="font-weight: bold;">{{.FormattedDate}}</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Heure :</td><td style="font-weight: bold;">{{.Time}}</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #555;">Durée :</td><td>{{.Duration}} minutes</td></tr>
      </table>
    </div>
    <p style="color: #e65100; font-weight: bold;">Appeler {{.FirstName}} {{.LastName}} au {{.Phone}}, le {{.FormattedDate}} à {{.Time}}.</p>
    <p style="color: #666; font-style: italic; text-align: center; font-size: 14px;">Un email de confirmation a été automatiquement envoyé au client.</p>
    <p style="text-align: center; color: #A13D6C; font-size: 14px; border-top: 2px solid #eee; padding-top: 20px;">
      <strong>Système de réservation Hormelys</strong>
    </p>
  </div>
</body>
</html>`))

func renderTemplate(t *template.Template, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
