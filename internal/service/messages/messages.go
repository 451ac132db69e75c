// Package messages renders notification texts for bookings and pastry orders.
//
// Every function is pure: identical details always produce identical text.
package messages

import (
	"fmt"
	"regexp"
	"strings"
)

// BookingDetails is everything a booking notification mentions.
type BookingDetails struct {
	ServiceName       string
	PricePerHourCents int64
	BookingDate       string
	StartTime         string
	EndTime           string
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Address           string
	ZipCode           string
	Notes             string
}

// OrderLine is a single ordered pastry.
type OrderLine struct {
	Name     string
	Quantity int
}

// OrderDetails is everything a pastry order notification mentions.
type OrderDetails struct {
	Items               []OrderLine
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	Address             string
	ZipCode             string
	SpecialInstructions string
}

const notesLimit = 50

var unsafeNoteChars = regexp.MustCompile(`[^A-Za-z0-9., -]`)

var smsReplacer = strings.NewReplacer(
	"\u2019", "'",
	"\u2002", " ",
)

// Sanitize replaces typographic characters some SMS gateways reject.
func Sanitize(text string) string {
	return smsReplacer.Replace(text)
}

// shortNotes keeps transport safe characters of free text notes and truncates them.
func shortNotes(notes string) string {
	cleaned := unsafeNoteChars.ReplaceAllString(notes, "")
	if len(cleaned) > notesLimit {
		cleaned = cleaned[:notesLimit]
	}

	return cleaned + "..."
}

func itemList(items []OrderLine) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s (%dx)", item.Name, item.Quantity))
	}

	return strings.Join(lines, "\n")
}

func euros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s€%d.%02d", sign, cents/100, cents%100)
}
