package model

import (
	"net/url"
	"time"
)

// Beneficiary is a payee registered on an account.
type Beneficiary struct {
	ID                     string    `json:"id,omitempty"`
	BankAccountHolderName  string    `json:"bank_account_holder_name,omitempty"`
	Name                   string    `json:"name,omitempty"`
	Email                  string    `json:"email,omitempty"`
	PaymentTypes           []string  `json:"payment_types,omitempty"`
	BeneficiaryAddress     []string  `json:"beneficiary_address,omitempty"`
	BeneficiaryCountry     string    `json:"beneficiary_country,omitempty"`
	BeneficiaryEntityType  string    `json:"beneficiary_entity_type,omitempty"`
	BeneficiaryCompanyName string    `json:"beneficiary_company_name,omitempty"`
	BeneficiaryFirstName   string    `json:"beneficiary_first_name,omitempty"`
	BeneficiaryLastName    string    `json:"beneficiary_last_name,omitempty"`
	BeneficiaryCity        string    `json:"beneficiary_city,omitempty"`
	BankCountry            string    `json:"bank_country,omitempty"`
	BankName               string    `json:"bank_name,omitempty"`
	BankAddress            []string  `json:"bank_address,omitempty"`
	BankAccountType        string    `json:"bank_account_type,omitempty"`
	Currency               string    `json:"currency,omitempty"`
	AccountNumber          string    `json:"account_number,omitempty"`
	RoutingCodeType1       string    `json:"routing_code_type_1,omitempty"`
	RoutingCodeValue1      string    `json:"routing_code_value_1,omitempty"`
	RoutingCodeType2       string    `json:"routing_code_type_2,omitempty"`
	RoutingCodeValue2      string    `json:"routing_code_value_2,omitempty"`
	BicSwift               string    `json:"bic_swift,omitempty"`
	Iban                   string    `json:"iban,omitempty"`
	DefaultBeneficiary     *bool     `json:"default_beneficiary,omitempty"`
	CreatorContactID       string    `json:"creator_contact_id,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewBeneficiary returns a beneficiary with the fields required to create one.
func NewBeneficiary(bankAccountHolderName, bankCountry, currency, name string) *Beneficiary {
	return &Beneficiary{
		BankAccountHolderName: bankAccountHolderName,
		BankCountry:           bankCountry,
		Currency:              currency,
		Name:                  name,
	}
}

// NewBeneficiaryForValidate returns a beneficiary with the fields required to
// validate bank details. beneficiaryCountry may be empty.
func NewBeneficiaryForValidate(bankCountry, currency, beneficiaryCountry string) *Beneficiary {
	return &Beneficiary{
		BankCountry:        bankCountry,
		Currency:           currency,
		BeneficiaryCountry: beneficiaryCountry,
	}
}

// Params returns the non-empty writable fields as form parameters.
// ID and timestamps are never sent.
func (b *Beneficiary) Params() url.Values {
	v := params{}
	if b == nil {
		return url.Values(v)
	}
	v.str("bank_account_holder_name", b.BankAccountHolderName)
	v.str("name", b.Name)
	v.str("email", b.Email)
	v.list("payment_types", b.PaymentTypes)
	v.list("beneficiary_address", b.BeneficiaryAddress)
	v.str("beneficiary_country", b.BeneficiaryCountry)
	v.str("beneficiary_entity_type", b.BeneficiaryEntityType)
	v.str("beneficiary_company_name", b.BeneficiaryCompanyName)
	v.str("beneficiary_first_name", b.BeneficiaryFirstName)
	v.str("beneficiary_last_name", b.BeneficiaryLastName)
	v.str("beneficiary_city", b.BeneficiaryCity)
	v.str("bank_country", b.BankCountry)
	v.str("bank_name", b.BankName)
	v.list("bank_address", b.BankAddress)
	v.str("bank_account_type", b.BankAccountType)
	v.str("currency", b.Currency)
	v.str("account_number", b.AccountNumber)
	v.str("routing_code_type_1", b.RoutingCodeType1)
	v.str("routing_code_value_1", b.RoutingCodeValue1)
	v.str("routing_code_type_2", b.RoutingCodeType2)
	v.str("routing_code_value_2", b.RoutingCodeValue2)
	v.str("bic_swift", b.BicSwift)
	v.str("iban", b.Iban)
	v.boolean("default_beneficiary", b.DefaultBeneficiary)
	v.str("creator_contact_id", b.CreatorContactID)
	return url.Values(v)
}

// Beneficiaries is one page of a beneficiary search.
type Beneficiaries struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
	Pagination    Pagination    `json:"pagination"`
}
