package messages

import (
	"net/url"
	"strings"

	"github.com/corray333/backend-labs/booking/internal/service/phone"
)

// WhatsAppLink builds a wa.me link that opens a chat with phone prefilled with message.
func WhatsAppLink(message, to string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return "https://wa.me/" + phone.WhatsAppNumber(to) + "?text=" + encoded
}

// BookingWhatsApp renders a booking as a WhatsApp message for the business.
func BookingWhatsApp(d BookingDetails) string {
	lines := []string{
		"*Nova Marcação de Serviço*",
		"",
		"Serviço: " + d.ServiceName,
		"Data: " + d.BookingDate,
		"Horário: " + d.StartTime + " - " + d.EndTime,
		"",
		"Detalhes do Cliente:",
		"- Nome: " + d.CustomerName,
		"- Email: " + d.CustomerEmail,
		"- Telefone: " + d.CustomerPhone,
		"",
		"Morada: " + d.Address,
		"Código Postal: " + d.ZipCode,
	}
	if strings.TrimSpace(d.Notes) != "" {
		lines = append(lines, "", "Notas: "+d.Notes)
	}
	lines = append(lines,
		"",
		"Preço por Hora: "+euros(d.PricePerHourCents),
		"",
		"Obrigado por escolher os nossos serviços! 🙏",
	)

	return strings.Join(lines, "\n")
}

// OrderWhatsApp renders a pastry order as a WhatsApp message for the business.
func OrderWhatsApp(d OrderDetails) string {
	lines := []string{
		"*Nova Encomenda de Pastelaria*",
		"",
		"Itens:",
		itemList(d.Items),
		"",
		"Total: Preço por determinar",
		"",
		"Detalhes de Entrega:",
		"- Nome: " + d.CustomerName,
		"- Morada: " + d.Address,
		"- Código Postal: " + d.ZipCode,
		"- Telefone: " + d.CustomerPhone,
	}
	if strings.TrimSpace(d.SpecialInstructions) != "" {
		lines = append(lines, "", "Instruções Especiais: "+d.SpecialInstructions)
	}
	lines = append(lines, "", "Obrigado pela encomenda na M.M.C Pastelaria! Entraremos em contato em breve!")

	return strings.Join(lines, "\n")
}
