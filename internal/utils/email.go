package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"lumera_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendOrderConfirmationEmail envoie l'e-mail de confirmation de commande.
// Best effort : l'appelant loggue l'erreur sans faire échouer le checkout.
func SendOrderConfirmationEmail(to string, order models.Order) error {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@lumera.shop"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirmation de votre commande %s", order.ID))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td>%d</td><td>%.2f €</td></tr>`,
			item.Name, item.Quantity, item.Price*float64(item.Quantity)))
	}

	return fmt.Sprintf(`
		<h2>Merci pour votre commande !</h2>
		<p>Commande <strong>%s</strong> enregistrée.</p>
		<table border="0" cellpadding="6">
			<tr><th>Article</th><th>Qté</th><th>Total</th></tr>
			%s
		</table>
		<p><strong>Total : %.2f €</strong></p>
		<p>Livraison : %s, %s %s, %s</p>`,
		order.ID, items.String(), order.TotalAmount,
		order.ShippingAddress.Street, order.ShippingAddress.PostalCode,
		order.ShippingAddress.City, order.ShippingAddress.Country)
}
