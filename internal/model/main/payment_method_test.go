package mainmodel

import "testing"

func strPtr(s string) *string { return &s }

func TestPaymentLinkMethodValidate(t *testing.T) {
	cases := []struct {
		name   string
		payURL *string
		wantOK bool
	}{
		{"absolute https", strPtr("https://pay.example.com/abc"), true},
		{"absolute http", strPtr("http://pay.example.com"), true},
		{"relative path", strPtr("/pay/abc"), false},
		{"no scheme", strPtr("pay.example.com/abc"), false},
		{"empty", strPtr(""), false},
		{"nil", nil, false},
		{"non-http scheme", strPtr("ftp://pay.example.com"), false},
	}
	for _, tc := range cases {
		m := &PaymentMethod{MethodID: 1, Type: MethodPaymentLink, PayURL: tc.payURL}
		err := m.Validate()
		if tc.wantOK && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.wantOK && err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestManualMethodCustomFieldValidate(t *testing.T) {
	ok := &PaymentMethod{MethodID: 2, Type: MethodManual, CustomFields: CustomFieldList{
		{Kind: FieldText, Label: "Reference", Required: true},
		{Kind: FieldEmail, Label: "Payer email"},
		{Kind: FieldNumber, Label: "Last 4 digits"},
		{Kind: FieldTel, Label: "Phone"},
		{Kind: FieldTextarea, Label: "Note"},
	}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid manual method rejected: %v", err)
	}

	badKind := &PaymentMethod{MethodID: 3, Type: MethodManual, CustomFields: CustomFieldList{
		{Kind: "checkbox", Label: "Agree"},
	}}
	if err := badKind.Validate(); err == nil {
		t.Error("unsupported field kind should be rejected")
	}

	noLabel := &PaymentMethod{MethodID: 4, Type: MethodManual, CustomFields: CustomFieldList{
		{Kind: FieldText, Label: "  "},
	}}
	if err := noLabel.Validate(); err == nil {
		t.Error("empty label should be rejected")
	}

	badType := &PaymentMethod{MethodID: 5, Type: "wire"}
	if err := badType.Validate(); err == nil {
		t.Error("unknown method type should be rejected")
	}
}

func TestMethodAppliesTo(t *testing.T) {
	m := &PaymentMethod{Countries: StringList{"US", "BR"}}
	if !m.AppliesTo("US") || !m.AppliesTo("us") {
		t.Error("country match should be case-insensitive")
	}
	if m.AppliesTo("DE") {
		t.Error("DE is not in the method country set")
	}
}

func TestLinkAllowsCountry(t *testing.T) {
	l := &CheckoutLink{AllowedCountries: StringList{"US"}}
	if !l.AllowsCountry("US") {
		t.Error("US should be allowed")
	}
	if l.AllowsCountry("DE") {
		t.Error("DE should be rejected")
	}

	open := &CheckoutLink{}
	if !open.AllowsCountry("JP") {
		t.Error("empty allow-set means no country restriction")
	}
}
