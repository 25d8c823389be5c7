package model

import "time"

// Account is a Currency Cloud account or sub-account.
type Account struct {
	ID                  string    `json:"id"`
	LegalEntityType     string    `json:"legal_entity_type"`
	AccountName         string    `json:"account_name"`
	Brand               string    `json:"brand"`
	YourReference       string    `json:"your_reference"`
	Status              string    `json:"status"`
	Street              string    `json:"street"`
	City                string    `json:"city"`
	StateOrProvince     string    `json:"state_or_province"`
	Country             string    `json:"country"`
	PostalCode          string    `json:"postal_code"`
	SpreadTable         string    `json:"spread_table"`
	IdentificationType  string    `json:"identification_type"`
	IdentificationValue string    `json:"identification_value"`
	ShortReference      string    `json:"short_reference"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
