package messages

import (
	"fmt"
	"strings"
)

// BookingSMS returns the admin and customer SMS bodies for a booking.
func BookingSMS(d BookingDetails) (admin, customer string) {
	admin = fmt.Sprintf(
		"Nova Marcacao: %s, %s %s-%s. Cliente: %s, Tel: %s. %s, %s",
		d.ServiceName, d.BookingDate, d.StartTime, d.EndTime,
		d.CustomerName, d.CustomerPhone, d.Address, d.ZipCode,
	)
	if strings.TrimSpace(d.Notes) != "" {
		admin += ". Notas: " + shortNotes(d.Notes)
	}

	customer = strings.Join([]string{
		"Obrigado por agendar com a M.M.C Services! Entraremos em contato brevemente!",
		"",
		"Confirmação de Agendamento:",
		"Serviço: " + d.ServiceName,
		"Data: " + d.BookingDate,
		"Horário: " + d.StartTime + " - " + d.EndTime,
		"Morada: " + d.Address,
		"Código Postal: " + d.ZipCode,
	}, "\n")

	return Sanitize(admin), Sanitize(customer)
}

// OrderSMS returns the admin and customer SMS bodies for a pastry order.
func OrderSMS(d OrderDetails) (admin, customer string) {
	items := itemList(d.Items)

	adminLines := []string{
		"Nova Encomenda de Pastelaria:",
		"",
		"Itens:",
		items,
		"Total: A confirmar!",
		"Cliente:",
		"Nome: " + d.CustomerName,
		"Tel: " + d.CustomerPhone,
		"Morada: " + d.Address,
		"Cód. Postal: " + d.ZipCode,
	}
	if strings.TrimSpace(d.SpecialInstructions) != "" {
		adminLines = append(adminLines, "", "Notas: "+shortNotes(d.SpecialInstructions))
	}

	customer = strings.Join([]string{
		"Obrigado pela encomenda na M.M.C Pastelaria! Entraremos em contato em breve!",
		"",
		"Detalhes da Encomenda:",
		items,
		"Total: A confirmar!",
		"Entrega:",
		d.Address,
		"Cód. Postal: " + d.ZipCode,
		"Preparamos a sua encomenda agora!",
	}, "\n")

	return Sanitize(strings.Join(adminLines, "\n")), Sanitize(customer)
}
