// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package telegram

import (
	"fmt"
	"html"
	"strings"

	"lightshop/internal/models"
)

// Notifier forwards storefront orders to a staff chat.
type Notifier struct {
	sender Sender
	chatID int64
}

// NewNotifier creates a Notifier posting into chatID.
func NewNotifier(sender Sender, chatID int64) *Notifier {
	return &Notifier{sender: sender, chatID: chatID}
}

// NotifyOrder posts an order summary.
func (n *Notifier) NotifyOrder(o *models.OrderRequest, p *models.Product, total int64) error {
	return n.sender.SendHTML(n.chatID, FormatOrder(o, p, total))
}

// FormatOrder renders an order as an HTML chat message. All customer
// input is escaped.
func FormatOrder(o *models.OrderRequest, p *models.Product, total int64) string {
	var b strings.Builder
	b.WriteString("🛒 <b>Новый заказ</b>\n\n")
	fmt.Fprintf(&b, "Товар: %s (ID %d)\n", html.EscapeString(p.Name), p.ID)
	fmt.Fprintf(&b, "Количество: %d\n", o.Quantity)
	fmt.Fprintf(&b, "Сумма: %s ₽\n\n", FormatRubles(total))
	fmt.Fprintf(&b, "Имя: %s\n", html.EscapeString(o.Name))
	fmt.Fprintf(&b, "Телефон: %s\n", html.EscapeString(o.Phone))
	if o.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", html.EscapeString(o.Email))
	}
	if o.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", html.EscapeString(o.Message))
	}
	return b.String()
}

// FormatRubles groups thousands with spaces: 1250000 → "1 250 000".
func FormatRubles(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, " ")
	if neg {
		out = "-" + out
	}
	return out
}
