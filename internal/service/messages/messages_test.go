package messages_test

import (
	"strings"
	"testing"

	"github.com/corray333/backend-labs/booking/internal/service/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func houseCleaning() messages.BookingDetails {
	return messages.BookingDetails{
		ServiceName:       "House Cleaning",
		PricePerHourCents: 1250,
		BookingDate:       "2025-01-10",
		StartTime:         "09:00",
		EndTime:           "11:00",
		CustomerName:      "Ana Silva",
		CustomerEmail:     "ana@example.com",
		CustomerPhone:     "912345678",
		Address:           "Rua X 10",
		ZipCode:           "1000-001",
	}
}

func TestBookingSMS(t *testing.T) {
	admin, customer := messages.BookingSMS(houseCleaning())

	assert.Equal(t,
		"Nova Marcacao: House Cleaning, 2025-01-10 09:00-11:00. Cliente: Ana Silva, Tel: 912345678. Rua X 10, 1000-001",
		admin,
	)
	assert.Contains(t, customer, "Serviço: House Cleaning")
	assert.Contains(t, customer, "Data: 2025-01-10")
	assert.Contains(t, customer, "Horário: 09:00 - 11:00")
	assert.Contains(t, customer, "Código Postal: 1000-001")
}

func TestBookingSMS_NotesAreSanitizedAndTruncated(t *testing.T) {
	d := houseCleaning()
	d.Notes = "Trazer escada! <b>2º andar</b> " + strings.Repeat("x", 80)

	admin, _ := messages.BookingSMS(d)

	_, notes, ok := strings.Cut(admin, ". Notas: ")
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(notes, "..."))
	body := strings.TrimSuffix(notes, "...")
	assert.Len(t, body, 50)
	assert.NotContains(t, body, "<")
	assert.NotContains(t, body, "!")
	assert.True(t, strings.HasPrefix(body, "Trazer escada b2 andarb"))
}

func TestBookingSMS_IsDeterministic(t *testing.T) {
	a1, c1 := messages.BookingSMS(houseCleaning())
	a2, c2 := messages.BookingSMS(houseCleaning())
	assert.Equal(t, a1, a2)
	assert.Equal(t, c1, c2)
}

func TestOrderSMS(t *testing.T) {
	admin, customer := messages.OrderSMS(messages.OrderDetails{
		Items: []messages.OrderLine{
			{Name: "Pastel de Nata", Quantity: 6},
			{Name: "Bolo de Chocolate", Quantity: 1},
		},
		CustomerName:        "Ana Silva",
		CustomerPhone:       "912345678",
		Address:             "Rua X 10",
		ZipCode:             "1000-001",
		SpecialInstructions: "Sem açúcar",
	})

	assert.Contains(t, admin, "- Pastel de Nata (6x)\n- Bolo de Chocolate (1x)")
	assert.Contains(t, admin, "Total: A confirmar!")
	assert.Contains(t, admin, "Nome: Ana Silva")
	assert.Contains(t, admin, "Notas: Sem acar...")
	assert.Contains(t, customer, "- Pastel de Nata (6x)")
	assert.Contains(t, customer, "Rua X 10")
	assert.NotContains(t, customer, "Notas")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "it's here", messages.Sanitize("it’s here"))
}

func TestBookingEmail_EscapesValues(t *testing.T) {
	d := houseCleaning()
	d.Notes = "<script>alert(1)</script>"

	subject, body := messages.BookingEmail(d)

	assert.Equal(t, messages.BookingEmailSubject, subject)
	assert.Contains(t, body, "<p><strong>Service:</strong> House Cleaning</p>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "€12.50")
}

func TestWhatsAppLink(t *testing.T) {
	link := messages.WhatsAppLink("Olá & bem-vindo", "912137525")

	assert.Equal(t, "https://wa.me/351912137525?text=Ol%C3%A1%20%26%20bem-vindo", link)
}

func TestWhatsAppMessages(t *testing.T) {
	booking := messages.BookingWhatsApp(houseCleaning())
	assert.True(t, strings.HasPrefix(booking, "*Nova Marcação de Serviço*"))
	assert.Contains(t, booking, "Preço por Hora: €12.50")

	order := messages.OrderWhatsApp(messages.OrderDetails{
		Items:        []messages.OrderLine{{Name: "Queijada", Quantity: 3}},
		CustomerName: "Ana Silva",
	})
	assert.Contains(t, order, "- Queijada (3x)")
	assert.Contains(t, order, "Total: Preço por determinar")
}

func TestPriceFormatting(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "Preço por Hora: €0.00"},
		{cents: 5, want: "Preço por Hora: €0.05"},
		{cents: 1250, want: "Preço por Hora: €12.50"},
		{cents: -150, want: "Preço por Hora: -€1.50"},
	}

	for _, tt := range tests {
		d := houseCleaning()
		d.PricePerHourCents = tt.cents

		assert.Contains(t, messages.BookingWhatsApp(d), tt.want)
	}
}
