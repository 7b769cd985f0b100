// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"strings"
)

// OrderRequest is a quote request submitted from the storefront order form.
type OrderRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// Normalize trims the contact fields.
func (o *OrderRequest) Normalize() {
	o.Name = strings.TrimSpace(o.Name)
	o.Phone = strings.TrimSpace(o.Phone)
	o.Email = strings.TrimSpace(o.Email)
	o.Message = strings.TrimSpace(o.Message)
}

// ErrTotalOverflow is returned when price times quantity does not fit
// in an int64.
var ErrTotalOverflow = errors.New("order total out of range")

// OrderTotal returns price times quantity.
func OrderTotal(price, quantity int64) (int64, error) {
	total := price * quantity
	if quantity != 0 && total/quantity != price {
		return 0, ErrTotalOverflow
	}
	return total, nil
}
