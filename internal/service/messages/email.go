package messages

import (
	"fmt"
	"html"
	"strings"
)

// BookingEmailSubject is the subject of the admin booking email.
const BookingEmailSubject = "New Booking Notification - MMC Services"

// BookingEmail returns the subject and HTML body of the admin booking email.
func BookingEmail(d BookingDetails) (subject, body string) {
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>\n", label, html.EscapeString(value))
	}

	b.WriteString("<h2>New Booking Details</h2>\n")
	field("Service", d.ServiceName)
	field("Date", d.BookingDate)
	field("Time", d.StartTime+" - "+d.EndTime)
	field("Address", d.Address)
	field("ZIP Code", d.ZipCode)
	if strings.TrimSpace(d.Notes) != "" {
		field("Notes", d.Notes)
	}
	b.WriteString("<h3>Customer Information</h3>\n")
	field("Name", d.CustomerName)
	field("Email", d.CustomerEmail)
	field("Phone", d.CustomerPhone)
	field("Price per Hour", euros(d.PricePerHourCents))

	return BookingEmailSubject, b.String()
}
