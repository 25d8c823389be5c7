package sandbox

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/identity"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

func (s *Server) registerRoutes() {
	s.Router.HandleFunc("/v2/beneficiaries/create", s.createBeneficiary).Methods("POST")
	s.Router.HandleFunc("/v2/beneficiaries/find", s.findBeneficiaries).Methods("GET")
	s.Router.HandleFunc("/v2/beneficiaries/validate", s.validateBeneficiary).Methods("POST")
	s.Router.HandleFunc("/v2/beneficiaries/{id}/delete", s.deleteBeneficiary).Methods("POST")
	s.Router.HandleFunc("/v2/beneficiaries/{id}", s.retrieveBeneficiary).Methods("GET")
	s.Router.HandleFunc("/v2/beneficiaries/{id}", s.updateBeneficiary).Methods("POST")
	s.Router.HandleFunc("/v2/balances/find", s.findBalances).Methods("GET")
	s.Router.HandleFunc("/v2/balances/{currency}", s.retrieveBalance).Methods("GET")
	s.Router.HandleFunc("/v2/accounts/current", s.currentAccount).Methods("GET")
	s.Router.HandleFunc("/v2/accounts/{id}", s.retrieveAccount).Methods("GET")
}

// pathVar returns the unescaped route variable name.
func pathVar(r *http.Request, name string) string {
	value, err := url.PathUnescape(mux.Vars(r)[name])
	if err != nil {
		return mux.Vars(r)[name]
	}
	return value
}

func owner(r *http.Request) string {
	id, _ := identity.OnBehalfOf(r.Context())
	return id
}

func (s *Server) createBeneficiary(w http.ResponseWriter, r *http.Request) {
	b := beneficiaryFromForm(r)

	var missing []string
	for field, value := range map[string]string{
		"bank_account_holder_name": b.BankAccountHolderName,
		"bank_country":             b.BankCountry,
		"currency":                 b.Currency,
		"name":                     b.Name,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		writeError(w, http.StatusBadRequest, "beneficiary_create_failed", missing[0], missing[0]+"_is_required", missing[0]+" is required")
		return
	}
	if len(b.PaymentTypes) == 0 {
		b.PaymentTypes = []string{"regular"}
	}

	s.mu.Lock()
	created := s.storeBeneficiary(owner(r), b)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, created)
}

// bankDirectory resolves sort codes to the bank details validation fills in.
var bankDirectory = map[string]struct {
	name    string
	address []string
}{
	"123456": {name: "HSBC BANK PLC", address: []string{"5 Wimbledon Hill Rd", "Wimbledon", "London"}},
	"400530": {name: "HSBC UK BANK PLC", address: []string{"1 Centenary Square", "Birmingham"}},
}

func (s *Server) validateBeneficiary(w http.ResponseWriter, r *http.Request) {
	b := beneficiaryFromForm(r)

	for _, field := range []struct{ name, value string }{
		{"bank_country", b.BankCountry},
		{"currency", b.Currency},
	} {
		if field.value == "" {
			writeError(w, http.StatusBadRequest, "beneficiary_validate_failed", field.name, field.name+"_is_required", field.name+" is required")
			return
		}
	}
	if b.AccountNumber == "" && b.Iban == "" {
		writeError(w, http.StatusBadRequest, "beneficiary_validate_failed", "account_number", "account_number_is_required", "account_number or iban is required")
		return
	}

	if b.RoutingCodeType1 == "sort_code" {
		bank, ok := bankDirectory[b.RoutingCodeValue1]
		if !ok {
			writeError(w, http.StatusBadRequest, "beneficiary_validate_failed", "routing_code_value_1", "routing_code_value_1_is_invalid", "sort_code is not recognised")
			return
		}
		if b.BankName == "" {
			b.BankName = bank.name
		}
		if len(b.BankAddress) == 0 {
			b.BankAddress = bank.address
		}
	}
	if len(b.PaymentTypes) == 0 {
		b.PaymentTypes = []string{"regular"}
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) retrieveBeneficiary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b, ok := s.beneficiaries[owner(r)][pathVar(r, "id")]
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "beneficiary")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) updateBeneficiary(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	patch := beneficiaryFromForm(r)

	s.mu.Lock()
	b, ok := s.beneficiaries[owner(r)][id]
	if ok {
		mergeBeneficiary(&b, patch)
		b = s.storeBeneficiary(owner(r), b)
	}
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "beneficiary")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBeneficiary(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	s.mu.Lock()
	b, ok := s.beneficiaries[owner(r)][id]
	if ok {
		delete(s.beneficiaries[owner(r)], id)
	}
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "beneficiary")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) findBeneficiaries(w http.ResponseWriter, r *http.Request) {
	filter := beneficiaryFromForm(r)

	s.mu.Lock()
	var matched []model.Beneficiary
	for _, b := range s.beneficiaries[owner(r)] {
		if matchesBeneficiary(b, filter) {
			matched = append(matched, b)
		}
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	items, page := paginate(r, len(matched))
	result := model.Beneficiaries{Beneficiaries: []model.Beneficiary{}, Pagination: page}
	for _, i := range items {
		result.Beneficiaries = append(result.Beneficiaries, matched[i])
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) findBalances(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	balances := append([]model.Balance(nil), s.balances[owner(r)]...)
	s.mu.Unlock()

	items, page := paginate(r, len(balances))
	result := model.Balances{Balances: []model.Balance{}, Pagination: page}
	for _, i := range items {
		result.Balances = append(result.Balances, balances[i])
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) retrieveBalance(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(pathVar(r, "currency"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.balances[owner(r)] {
		if b.Currency == currency {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	writeNotFound(w, "balance")
}

func (s *Server) currentAccount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a, ok := s.accounts[owner(r)]
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "account")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) retrieveAccount(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	writeNotFound(w, "account")
}

func beneficiaryFromForm(r *http.Request) model.Beneficiary {
	f := r.Form
	b := model.Beneficiary{
		BankAccountHolderName:  f.Get("bank_account_holder_name"),
		Name:                   f.Get("name"),
		Email:                  f.Get("email"),
		PaymentTypes:           f["payment_types[]"],
		BeneficiaryAddress:     f["beneficiary_address[]"],
		BeneficiaryCountry:     f.Get("beneficiary_country"),
		BeneficiaryEntityType:  f.Get("beneficiary_entity_type"),
		BeneficiaryCompanyName: f.Get("beneficiary_company_name"),
		BeneficiaryFirstName:   f.Get("beneficiary_first_name"),
		BeneficiaryLastName:    f.Get("beneficiary_last_name"),
		BeneficiaryCity:        f.Get("beneficiary_city"),
		BankCountry:            f.Get("bank_country"),
		BankName:               f.Get("bank_name"),
		BankAddress:            f["bank_address[]"],
		BankAccountType:        f.Get("bank_account_type"),
		Currency:               f.Get("currency"),
		AccountNumber:          f.Get("account_number"),
		RoutingCodeType1:       f.Get("routing_code_type_1"),
		RoutingCodeValue1:      f.Get("routing_code_value_1"),
		RoutingCodeType2:       f.Get("routing_code_type_2"),
		RoutingCodeValue2:      f.Get("routing_code_value_2"),
		BicSwift:               f.Get("bic_swift"),
		Iban:                   f.Get("iban"),
		CreatorContactID:       f.Get("creator_contact_id"),
	}
	if v := f.Get("default_beneficiary"); v != "" {
		flag := v == "true"
		b.DefaultBeneficiary = &flag
	}
	return b
}

// mergeBeneficiary copies the non-empty fields of patch onto b.
func mergeBeneficiary(b *model.Beneficiary, patch model.Beneficiary) {
	var into, from map[string]any
	raw, _ := json.Marshal(patch)
	_ = json.Unmarshal(raw, &from)
	raw, _ = json.Marshal(b)
	_ = json.Unmarshal(raw, &into)
	for k, v := range from {
		if k == "created_at" || k == "updated_at" {
			continue
		}
		into[k] = v
	}
	raw, _ = json.Marshal(into)
	_ = json.Unmarshal(raw, b)
}

// matchesBeneficiary reports whether every non-empty filter field equals b's.
func matchesBeneficiary(b, filter model.Beneficiary) bool {
	checks := [][2]string{
		{filter.BankAccountHolderName, b.BankAccountHolderName},
		{filter.Name, b.Name},
		{filter.BankCountry, b.BankCountry},
		{filter.Currency, b.Currency},
		{filter.AccountNumber, b.AccountNumber},
		{filter.BeneficiaryCountry, b.BeneficiaryCountry},
		{filter.Iban, b.Iban},
		{filter.BicSwift, b.BicSwift},
	}
	for _, c := range checks {
		if c[0] != "" && c[0] != c[1] {
			return false
		}
	}
	return true
}

// paginate returns the indexes of the requested page of total items.
func paginate(r *http.Request, total int) ([]int, model.Pagination) {
	page := atoiDefault(r.Form.Get("page"), 1)
	perPage := atoiDefault(r.Form.Get("per_page"), 25)

	pages := (total + perPage - 1) / perPage
	p := model.Pagination{
		TotalEntries: total,
		TotalPages:   pages,
		CurrentPage:  page,
		PerPage:      perPage,
		PreviousPage: -1,
		NextPage:     -1,
		Order:        r.Form.Get("order"),
		OrderAscDesc: r.Form.Get("order_asc_desc"),
	}
	if p.Order == "" {
		p.Order = "created_at"
	}
	if p.OrderAscDesc == "" {
		p.OrderAscDesc = "asc"
	}
	if page > 1 {
		p.PreviousPage = page - 1
	}
	if page < pages {
		p.NextPage = page + 1
	}

	var items []int
	for i := (page - 1) * perPage; i < total && i < page*perPage; i++ {
		items = append(items, i)
	}
	return items, p
}

func atoiDefault(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 {
		return def
	}
	return i
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter, resource string) {
	writeError(w, http.StatusNotFound, resource+"_not_found", "id", resource+"_not_found", resource+" was not found for this id")
}

func writeError(w http.ResponseWriter, status int, errorCode, field, code, message string) {
	w.Header().Set("X-Request-Id", uuid.NewString())
	writeJSON(w, status, map[string]any{
		"error_code": errorCode,
		"error_messages": map[string][]map[string]any{
			field: {{"code": code, "message": message, "params": map[string]any{}}},
		},
	})
}
