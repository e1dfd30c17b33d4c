package conversion

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// Email templates rendered for the three conversion flows. The inline styles
// keep the messages readable in clients that strip external CSS.

var itineraryEmailTmpl = template.Must(template.New("itinerary").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px 10px 0 0; }
.content { background: #f8f9fa; padding: 20px; }
.summary-box { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #667eea; }
.attraction-item { background: white; padding: 15px; margin: 10px 0; border-radius: 5px; border: 1px solid #e0e0e0; }
.footer { background: #333; color: white; padding: 15px; text-align: center; border-radius: 0 0 10px 10px; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Your Nepal Adventure Awaits!</h1>
    <p>Hi {{.Name}},</p>
  </div>
  <div class="content">
    <p>Thank you for using Nepal Trails Trip Planner! Here's your personalized itinerary:</p>
    <div class="summary-box">
      <h2>Trip Summary</h2>
      <p><strong>Duration:</strong> {{.Summary.TotalDays}} days</p>
      <p><strong>Estimated Cost:</strong> ${{printf "%.2f" .Summary.TotalCost}}</p>
      <p><strong>Daily Average:</strong> ${{printf "%.2f" .Summary.AverageDailyCost}}</p>
      <p><strong>Attractions:</strong> {{.Summary.AttractionsCount}}</p>
      <p><strong>Regions:</strong> {{join .Summary.RegionsCovered ", "}}</p>
    </div>
    <h2>Selected Attractions</h2>
    {{range .Attractions}}
    <div class="attraction-item">
      <h3>{{.Name}}</h3>
      <p><strong>Region:</strong> {{.Region}}</p>
      <p><strong>Category:</strong> {{.Category}}</p>
      <p><strong>Duration:</strong> {{.DurationDays}} days</p>
      <p><strong>Cost:</strong> ${{printf "%.0f" .AvgCostUSD}}</p>
      <p><strong>Difficulty:</strong> {{.Difficulty}}</p>
      <p><strong>Best Season:</strong> {{.BestSeason}}</p>
    </div>
    {{end}}
    <p style="margin-top: 30px;">
      <strong>Need help planning your trip?</strong><br>
      Our local travel experts are here to assist you. Reply to this email to get a customized quote.
    </p>
  </div>
  <div class="footer">
    <p>Nepal Trails Trip Planner</p>
    <p>Happy Travels!</p>
  </div>
</div>
</body>
</html>`))

var adminNotificationTmpl = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: {{.Color}}; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
.content { background: #f8f9fa; padding: 20px; }
.info-box { background: white; padding: 15px; margin: 10px 0; border-radius: 5px; border-left: 4px solid {{.Color}}; }
.footer { background: #333; color: white; padding: 15px; text-align: center; border-radius: 0 0 10px 10px; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>{{.Title}}</h1></div>
  <div class="content">
    <p>{{.Intro}}</p>
    <div class="info-box">
      <p><strong>Name:</strong> {{.Lead.Name}}</p>
      <p><strong>Email:</strong> {{.Lead.Email}}</p>
      {{if .Lead.Phone}}<p><strong>Phone:</strong> {{.Lead.Phone}}</p>{{end}}
      {{if .AttractionIDs}}<p><strong>Attraction IDs:</strong> {{.AttractionIDs}}</p>{{end}}
    </div>
    <p style="margin-top: 20px;"><strong>{{.CallToAction}}</strong></p>
  </div>
  <div class="footer"><p>Nepal Trails Trip Planner - Admin Portal</p></div>
</div>
</body>
</html>`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px 10px 0 0; }
.content { background: #f8f9fa; padding: 20px; }
.footer { background: #333; color: white; padding: 15px; text-align: center; border-radius: 0 0 10px 10px; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>Request Received!</h1></div>
  <div class="content">
    <p>Hi {{.Name}},</p>
    <p>{{.Message}}</p>
    <p>If you have any questions, feel free to reply to this email.</p>
    <p>Happy planning!</p>
  </div>
  <div class="footer"><p>Nepal Trails Trip Planner</p></div>
</div>
</body>
</html>`))

type confirmationCopy struct {
	Subject string
	Message string
}

var confirmationByType = map[string]confirmationCopy{
	types.LeadTypeEmail: {
		Subject: "Your Itinerary is on the way!",
		Message: "We're preparing your itinerary and will send it to you shortly. Please check your email in a few minutes.",
	},
	types.LeadTypeExpert: {
		Subject: "Expert Consultation Request Received",
		Message: "Thank you for requesting expert consultation. One of our local travel experts will contact you within 24 hours to help plan your perfect Nepal adventure!",
	},
	types.LeadTypeQuote: {
		Subject: "Quote Request Received",
		Message: "Thank you for your interest! We're preparing a customized quote for your selected attractions. Our team will send you a detailed quote within 1-2 business days.",
	},
}

type itineraryEmailData struct {
	Name        string
	Summary     types.ItinerarySummary
	Attractions []types.Attraction
}

type adminNotificationData struct {
	Color         string
	Title         string
	Intro         string
	CallToAction  string
	Lead          types.Lead
	AttractionIDs string
}

func renderItineraryEmail(name string, attractions []types.Attraction, summary types.ItinerarySummary) (string, error) {
	var b strings.Builder
	err := itineraryEmailTmpl.Execute(&b, itineraryEmailData{
		Name:        name,
		Summary:     summary,
		Attractions: attractions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render itinerary email: %w", err)
	}
	return b.String(), nil
}

func renderAdminNotification(lead types.Lead) (subject, body string, err error) {
	data := adminNotificationData{Lead: lead}
	switch lead.LeadType {
	case types.LeadTypeQuote:
		subject = fmt.Sprintf("New Quote Request - %s", lead.Name)
		data.Color = "#4CAF50"
		data.Title = "New Quote Request"
		data.Intro = "A new user has requested a customized quote:"
		data.CallToAction = "Please prepare a customized quote and send it to the user."
		data.AttractionIDs = joinInts(lead.AttractionIDs)
	default:
		subject = fmt.Sprintf("New Expert Consultation Request - %s", lead.Name)
		data.Color = "#ff9800"
		data.Title = "New Expert Consultation Request"
		data.Intro = "A new user has requested expert consultation:"
		data.CallToAction = "Please contact this lead within 24 hours."
	}

	var b strings.Builder
	if err := adminNotificationTmpl.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("failed to render admin notification: %w", err)
	}
	return subject, b.String(), nil
}

func renderConfirmation(name, requestType string) (subject, body string, err error) {
	copyText, ok := confirmationByType[requestType]
	if !ok {
		copyText = confirmationByType[types.LeadTypeEmail]
	}

	var b strings.Builder
	err = confirmationTmpl.Execute(&b, struct {
		Name    string
		Message string
	}{Name: name, Message: copyText.Message})
	if err != nil {
		return "", "", fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return copyText.Subject, b.String(), nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
