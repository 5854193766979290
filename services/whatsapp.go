package services

import (
	"fmt"
	"net/url"
)

// DefaultWhatsAppNumber is the agency contact used when no number is configured.
const DefaultWhatsAppNumber = "919876543210"

// WhatsAppLink builds the prefilled enquiry deep link shown with every plan.
// Pure function of its inputs; it never fails.
func WhatsAppLink(number, destination string, days int, month string) string {
	if number == "" {
		number = DefaultWhatsAppNumber
	}
	message := fmt.Sprintf("Hi, I'm interested in a %d-day trip to %s in %s. Can you help me plan?",
		days, destination, month)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}
