package services

import (
	"fmt"
	"strings"

	"gallery_backend/internal/models"
)

// IsTFP reports whether the payment text describes a Time for Prints deal.
func IsTFP(payment string) bool {
	return strings.Contains(strings.ToLower(payment), "tfp")
}

func paymentClause(gig *models.Gig, creativeName string) string {
	if IsTFP(gig.Payment) {
		return fmt.Sprintf("This is a TFP (Time for Prints) collaboration. %s will receive 5-10 high-resolution edited images for their portfolio within 14 days of the shoot.", creativeName)
	}
	return fmt.Sprintf("The payment for this project is %s, to be paid to %s upon completion of services on %s.", gig.Payment, creativeName, gig.Date)
}

// GenerateTerms renders the agreement text for gig with creative hired.
// The result is stored on the agreement and never regenerated.
func GenerateTerms(gig *models.Gig, creative *models.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This agreement is between %s (The Client) and %s (The Creative) for the project titled \"%s\".\n\n",
		gig.PosterName, creative.Name, gig.Title)
	fmt.Fprintf(&b, "Date of Service: %s\n", gig.Date)
	fmt.Fprintf(&b, "Location: %s\n", gig.Location)
	fmt.Fprintf(&b, "Role: %s\n\n", gig.RoleSought)
	fmt.Fprintf(&b, "Payment Terms: %s\n\n", paymentClause(gig, creative.Name))
	b.WriteString("Usage Rights: The Client has the right to use the final work for their specified purposes. ")
	b.WriteString("The Creative retains the right to use the work for their own portfolio and self-promotion. ")
	b.WriteString("Any other use requires written permission.\n\n")
	b.WriteString("This digital agreement is legally binding upon signature by The Creative.\n")
	return b.String()
}
