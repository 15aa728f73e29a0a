package notify

import (
	"html"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/slabworks/cardstand/internal/domain"
)

// FormatAmount renders an integer minor-unit amount as a localized
// currency string, e.g. 42500 + "usd" -> "$425.00".
func FormatAmount(cents int64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(float64(cents) / 100)))
}

func cardLine(c *domain.Card, currencyCode string) string {
	var b strings.Builder
	b.WriteString("  - ")
	b.WriteString(c.Name)
	if c.SetName != "" {
		b.WriteString(" (")
		b.WriteString(c.SetName)
		b.WriteString(")")
	}
	if c.Condition != "" {
		b.WriteString(" [")
		b.WriteString(c.Condition)
		if c.Grading != "" {
			b.WriteString(", ")
			b.WriteString(c.Grading)
		}
		b.WriteString("]")
	}
	b.WriteString(" ")
	b.WriteString(FormatAmount(c.PriceCents, currencyCode))
	return b.String()
}

func buyerConfirmationBody(order *domain.Order, cards []domain.Card, currencyCode string) string {
	var b strings.Builder
	b.WriteString("Thanks for your order!\n\n")
	b.WriteString("Confirmation code: " + order.ConfirmationCode + "\n\n")
	b.WriteString("Items:\n")
	for i := range cards {
		b.WriteString(cardLine(&cards[i], currencyCode) + "\n")
	}
	b.WriteString("\nTotal: " + FormatAmount(order.AmountCents, currencyCode) + "\n")
	b.WriteString("Shipping to: " + order.ShippingAddress + "\n")
	return b.String()
}

// cardItemHTML mirrors cardLine for the HTML alternative part. All
// card fields are admin-entered, so they are escaped anyway.
func cardItemHTML(c *domain.Card, currencyCode string) string {
	var b strings.Builder
	b.WriteString("<li>")
	b.WriteString(html.EscapeString(c.Name))
	if c.SetName != "" {
		b.WriteString(" (" + html.EscapeString(c.SetName) + ")")
	}
	if c.Condition != "" {
		b.WriteString(" [" + html.EscapeString(c.Condition))
		if c.Grading != "" {
			b.WriteString(", " + html.EscapeString(c.Grading))
		}
		b.WriteString("]")
	}
	b.WriteString(" " + FormatAmount(c.PriceCents, currencyCode))
	b.WriteString("</li>")
	return b.String()
}

func buyerConfirmationHTML(order *domain.Order, cards []domain.Card, currencyCode string) string {
	var b strings.Builder
	b.WriteString("<p>Thanks for your order!</p>")
	b.WriteString("<p>Confirmation code: <strong>" + html.EscapeString(order.ConfirmationCode) + "</strong></p>")
	b.WriteString("<ul>")
	for i := range cards {
		b.WriteString(cardItemHTML(&cards[i], currencyCode))
	}
	b.WriteString("</ul>")
	b.WriteString("<p>Total: " + FormatAmount(order.AmountCents, currencyCode) + "</p>")
	b.WriteString("<p>Shipping to: " + html.EscapeString(order.ShippingAddress) + "</p>")
	return b.String()
}

func operatorNotificationHTML(order *domain.Order, cards []domain.Card, currencyCode string) string {
	var b strings.Builder
	b.WriteString("<p>New sale <strong>" + html.EscapeString(order.ConfirmationCode) + "</strong></p>")
	b.WriteString("<p>Buyer: " + html.EscapeString(order.BuyerName) + " &lt;" + html.EscapeString(order.BuyerEmail) + "&gt;<br>")
	b.WriteString("Ship to: " + html.EscapeString(order.ShippingAddress) + "</p>")
	b.WriteString("<ul>")
	for i := range cards {
		b.WriteString(cardItemHTML(&cards[i], currencyCode))
	}
	b.WriteString("</ul>")
	b.WriteString("<p>Total: " + FormatAmount(order.AmountCents, currencyCode) + "<br>")
	b.WriteString("Session: " + html.EscapeString(order.SessionID) + "</p>")
	return b.String()
}

func operatorNotificationBody(order *domain.Order, cards []domain.Card, currencyCode string) string {
	var b strings.Builder
	b.WriteString("New sale " + order.ConfirmationCode + "\n\n")
	b.WriteString("Buyer: " + order.BuyerName + " <" + order.BuyerEmail + ">\n")
	b.WriteString("Ship to: " + order.ShippingAddress + "\n\n")
	b.WriteString("Cards:\n")
	for i := range cards {
		b.WriteString(cardLine(&cards[i], currencyCode) + "\n")
	}
	b.WriteString("\nTotal: " + FormatAmount(order.AmountCents, currencyCode) + "\n")
	b.WriteString("Session: " + order.SessionID + "\n")
	return b.String()
}
