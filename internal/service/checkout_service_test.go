package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"pcl-checkout-api/internal/constant"
	"pcl-checkout-api/internal/dto"
	"pcl-checkout-api/internal/idgen"
	mainmodel "pcl-checkout-api/internal/model/main"
	paymentmodel "pcl-checkout-api/internal/model/payment"
	"pcl-checkout-api/internal/mq"
)

func TestMain(m *testing.M) {
	idgen.Init(1)
	os.Exit(m.Run())
}

// ---- fakes ----

type fakeMain struct {
	link    *mainmodel.CheckoutLink
	country *mainmodel.Country
	method  *mainmodel.PaymentMethod
}

func (f *fakeMain) GetLinkBySlug(slug string) (*mainmodel.CheckoutLink, error) {
	if f.link != nil && f.link.Slug == slug {
		return f.link, nil
	}
	return nil, nil
}
func (f *fakeMain) GetMerchant(mid uint64) (*mainmodel.Merchant, error) { return nil, nil }
func (f *fakeMain) GetCountry(code string) (*mainmodel.Country, error) {
	if f.country != nil && f.country.Code == code {
		return f.country, nil
	}
	return nil, nil
}
func (f *fakeMain) ListCountries(codes []string) ([]mainmodel.Country, error) {
	if f.country == nil {
		return nil, nil
	}
	return []mainmodel.Country{*f.country}, nil
}
func (f *fakeMain) GetMethod(methodID, mid uint64) (*mainmodel.PaymentMethod, error) {
	if f.method != nil && f.method.MethodID == methodID && f.method.MID == mid {
		return f.method, nil
	}
	return nil, nil
}
func (f *fakeMain) ListMethods(mid uint64, country string) ([]mainmodel.PaymentMethod, error) {
	if f.method == nil || f.method.MID != mid || !f.method.AppliesTo(country) {
		return nil, nil
	}
	return []mainmodel.PaymentMethod{*f.method}, nil
}

type fakeLedger struct {
	inserted     []*paymentmodel.Payment
	insertErr    error
	transitionOK bool
}

func (f *fakeLedger) Insert(p *paymentmodel.Payment) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, p)
	return nil
}
func (f *fakeLedger) GetByID(id uint64) (*paymentmodel.Payment, error) {
	for _, p := range f.inserted {
		if p.PaymentID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeLedger) List(mid uint64, status string, months, page, pageSize int) ([]paymentmodel.Payment, int64, error) {
	var out []paymentmodel.Payment
	for _, p := range f.inserted {
		if p.MID == mid && (status == "" || string(p.Status) == status) {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}
func (f *fakeLedger) Transition(p *paymentmodel.Payment, to paymentmodel.Status, operator, remark, traceID string) (bool, error) {
	if !f.transitionOK {
		return false, nil
	}
	p.Status = to
	return true, nil
}

type fakeProof struct {
	uploads   int
	removed   []string
	uploadErr error
}

func (f *fakeProof) Upload(ctx context.Context, merchantID uint64, file io.Reader, contentType string) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	f.uploads++
	key := fmt.Sprintf("proof/%d/fake-%d.jpg", merchantID, f.uploads)
	return "https://proof.example.com/" + key, key, nil
}
func (f *fakeProof) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}
func (f *fakeProof) SignedURL(ctx context.Context, key string) (string, error) {
	return "https://proof.example.com/signed/" + key, nil
}

type fakePub struct {
	created []mq.PaymentCreatedEvent
	status  []mq.PaymentStatusEvent
}

func (f *fakePub) PaymentCreated(evt mq.PaymentCreatedEvent) error {
	f.created = append(f.created, evt)
	return nil
}
func (f *fakePub) PaymentStatus(evt mq.PaymentStatusEvent) error {
	f.status = append(f.status, evt)
	return nil
}

type fakeGuard struct{ seen map[string]bool }

func (f *fakeGuard) Acquire(slug, token string) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	k := slug + ":" + token
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

// ---- fixtures ----

func fixedAmount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func acmeFixture() (*fakeMain, *fakeLedger, *fakeProof, *fakePub, *CheckoutService) {
	main := &fakeMain{
		link: &mainmodel.CheckoutLink{
			LinkID:           5,
			MID:              7,
			Slug:             "acme-checkout",
			Title:            "Acme Checkout",
			AmountPolicy:     mainmodel.AmountPolicyFixed,
			FixedAmount:      fixedAmount("50.00"),
			AllowedCountries: mainmodel.StringList{"US"},
			Status:           1,
		},
		country: &mainmodel.Country{Code: "US", NameEn: "United States", Currency: "USD", Status: 1},
		method: &mainmodel.PaymentMethod{
			MethodID:  11,
			MID:       7,
			Title:     "Bank transfer",
			Type:      mainmodel.MethodManual,
			Countries: mainmodel.StringList{"US"},
			Status:    1,
		},
	}
	ledger := &fakeLedger{transitionOK: true}
	pf := &fakeProof{}
	pub := &fakePub{}
	svc := &CheckoutService{main: main, ledger: ledger, proof: pf, pub: pub, guard: &fakeGuard{}}
	return main, ledger, pf, pub, svc
}

func submitReq() dto.SubmitReq {
	return dto.SubmitReq{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		Amount:          "50.00",
		Country:         "US",
		PaymentMethodID: "11",
		CheckoutLinkID:  "5",
	}
}

func proofFile() *ProofFile {
	return &ProofFile{Reader: strings.NewReader("img-bytes"), Size: 9, ContentType: "image/jpeg"}
}

// ---- tests ----

func TestSubmitSuccess(t *testing.T) {
	_, ledger, pf, pub, svc := acmeFixture()

	resp, err := svc.Submit(context.Background(), "acme-checkout", submitReq(), proofFile(), nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if resp.PaymentID == "" {
		t.Fatal("payment id missing")
	}
	if len(ledger.inserted) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(ledger.inserted))
	}

	p := ledger.inserted[0]
	if p.Status != paymentmodel.StatusPendingVerification {
		t.Errorf("status = %s, want pending_verification", p.Status)
	}
	// 币种来自参考数据，绝不来自客户端
	if p.Currency != "USD" {
		t.Errorf("currency = %s, want USD", p.Currency)
	}
	if p.Country != "US" || p.MID != 7 || p.LinkID != 5 || p.MethodID != 11 {
		t.Errorf("payment fields wrong: %+v", p)
	}
	if p.ProofURL == "" || p.ProofKey == "" {
		t.Error("proof url/key must be set at creation")
	}
	if pf.uploads != 1 || len(pf.removed) != 0 {
		t.Errorf("proof store: uploads=%d removed=%v", pf.uploads, pf.removed)
	}
	if len(pub.created) != 1 {
		t.Errorf("expected 1 created event, got %d", len(pub.created))
	}
}

func TestSubmitUnknownSlug(t *testing.T) {
	_, ledger, pf, _, svc := acmeFixture()

	_, err := svc.Submit(context.Background(), "no-such-link", submitReq(), proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeLinkNotFound {
		t.Fatalf("expected LinkNotFound, got %v", err)
	}
	if pf.uploads != 0 || len(ledger.inserted) != 0 {
		t.Error("no side effect allowed on validation failure")
	}
}

func TestSubmitInactiveLinkSameAsMissing(t *testing.T) {
	main, ledger, pf, _, svc := acmeFixture()
	main.link.Status = 0

	_, err := svc.Submit(context.Background(), "acme-checkout", submitReq(), proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeLinkNotFound {
		t.Fatalf("inactive link must look like a missing one, got %v", err)
	}
	if pf.uploads != 0 || len(ledger.inserted) != 0 {
		t.Error("no side effect allowed for inactive link")
	}
}

func TestSubmitStaleLinkID(t *testing.T) {
	_, _, pf, _, svc := acmeFixture()

	req := submitReq()
	req.CheckoutLinkID = "999"
	_, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeLinkMismatch {
		t.Fatalf("expected LinkMismatch, got %v", err)
	}
	if pf.uploads != 0 {
		t.Error("no upload on stale client state")
	}
}

func TestSubmitCountryOutsideAllowSet(t *testing.T) {
	_, ledger, pf, _, svc := acmeFixture()

	req := submitReq()
	req.Country = "DE"
	_, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeInvalidCountry {
		t.Fatalf("expected InvalidCountry, got %v", err)
	}
	if pf.uploads != 0 || len(ledger.inserted) != 0 {
		t.Error("zero payment rows expected")
	}
}

func TestSubmitUnknownCountry(t *testing.T) {
	main, _, _, _, svc := acmeFixture()
	main.link.AllowedCountries = nil // 链接不限国家，参考数据缺失仍需拒绝

	req := submitReq()
	req.Country = "XX"
	_, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeInvalidCountry {
		t.Fatalf("expected InvalidCountry, got %v", err)
	}
}

func TestSubmitCurrencyNotConfigured(t *testing.T) {
	main, _, pf, _, svc := acmeFixture()
	main.country.Currency = ""

	_, err := svc.Submit(context.Background(), "acme-checkout", submitReq(), proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeCurrencyNotConfigured {
		t.Fatalf("currency absence must be an error, got %v", err)
	}
	if pf.uploads != 0 {
		t.Error("no upload on refdata failure")
	}
}

func TestSubmitMethodNotInCountry(t *testing.T) {
	main, _, _, _, svc := acmeFixture()
	main.method.Countries = mainmodel.StringList{"BR"}
	main.link.AllowedCountries = mainmodel.StringList{"US", "BR"}

	_, err := svc.Submit(context.Background(), "acme-checkout", submitReq(), proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeInvalidMethod {
		t.Fatalf("expected InvalidMethod, got %v", err)
	}
}

func TestSubmitInactiveMethod(t *testing.T) {
	main, _, _, _, svc := acmeFixture()
	main.method.Status = 0

	_, err := svc.Submit(context.Background(), "acme-checkout", submitReq(), proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeInvalidMethod {
		t.Fatalf("expected InvalidMethod, got %v", err)
	}
}

func TestSubmitMissingFields(t *testing.T) {
	_, ledger, pf, _, svc := acmeFixture()

	req := submitReq()
	req.CustomerEmail = "  "
	_, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeMissingFields {
		t.Fatalf("expected MissingFields, got %v", err)
	}

	_, err = svc.Submit(context.Background(), "acme-checkout", submitReq(), nil, nil)
	if constant.CodeOf(err) != constant.CodeMissingFields {
		t.Fatalf("missing proof file: expected MissingFields, got %v", err)
	}
	if pf.uploads != 0 || len(ledger.inserted) != 0 {
		t.Error("fail fast: no partial state")
	}
}

func TestSubmitRequiredCustomField(t *testing.T) {
	main, _, _, _, svc := acmeFixture()
	main.method.CustomFields = mainmodel.CustomFieldList{
		{Kind: mainmodel.FieldText, Label: "Reference", Required: true},
	}

	_, err := svc.Submit(context.Background(), "acme-checkout", submitReq(), proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeMissingFields {
		t.Fatalf("required custom field missing: expected MissingFields, got %v", err)
	}

	req := submitReq()
	req.Fields = map[string]string{"Reference": "TX-1001"}
	if _, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil); err != nil {
		t.Fatalf("submit with custom field failed: %v", err)
	}
}

func TestSubmitFixedAmountMismatch(t *testing.T) {
	_, _, pf, _, svc := acmeFixture()

	req := submitReq()
	req.Amount = "49.99"
	_, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeAmountMismatch {
		t.Fatalf("expected AmountMismatch, got %v", err)
	}
	if pf.uploads != 0 {
		t.Error("no upload on amount mismatch")
	}
}

func TestSubmitVariableAmount(t *testing.T) {
	main, ledger, _, _, svc := acmeFixture()
	main.link.AmountPolicy = mainmodel.AmountPolicyVariable
	main.link.FixedAmount = nil

	req := submitReq()
	req.Amount = "12.34"
	if _, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil); err != nil {
		t.Fatalf("variable amount submit failed: %v", err)
	}
	if got := ledger.inserted[0].Amount.String(); got != "12.34" {
		t.Errorf("amount = %s, want 12.34", got)
	}
}

func TestSubmitDuplicateToken(t *testing.T) {
	_, ledger, _, _, svc := acmeFixture()

	req := submitReq()
	req.ClientToken = "tok-1"
	if _, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err := svc.Submit(context.Background(), "acme-checkout", req, proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeDuplicateSubmission {
		t.Fatalf("expected DuplicateSubmission, got %v", err)
	}
	if len(ledger.inserted) != 1 {
		t.Errorf("duplicate must not create a second row, got %d", len(ledger.inserted))
	}
}

func TestSubmitUploadFailureSkipsLedger(t *testing.T) {
	_, ledger, pf, _, svc := acmeFixture()
	pf.uploadErr = fmt.Errorf("connection reset")

	_, err := svc.Submit(context.Background(), "acme-checkout", submitReq(), proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeUploadFailed {
		t.Fatalf("expected UploadFailed, got %v", err)
	}
	if len(ledger.inserted) != 0 {
		t.Error("no ledger write after upload failure")
	}
	if len(pf.removed) != 0 {
		t.Error("nothing to compensate when upload failed")
	}
}

func TestSubmitLedgerFailureCompensatesUpload(t *testing.T) {
	_, _, pf, pub, svc := acmeFixture()
	ledger := &fakeLedger{insertErr: fmt.Errorf("deadlock")}
	svc.ledger = ledger

	_, err := svc.Submit(context.Background(), "acme-checkout", submitReq(), proofFile(), nil)
	if constant.CodeOf(err) != constant.CodeLedgerWriteFailed {
		t.Fatalf("expected LedgerWriteFailed, got %v", err)
	}
	if pf.uploads != 1 || len(pf.removed) != 1 {
		t.Errorf("uploaded blob must be deleted: uploads=%d removed=%v", pf.uploads, pf.removed)
	}
	if len(pub.created) != 0 {
		t.Error("no event after failed submit")
	}
}

func TestValidate(t *testing.T) {
	main, _, _, _, svc := acmeFixture()

	if v := svc.Validate("acme-checkout"); !v.Valid {
		t.Error("active link should validate")
	}
	main.link.Status = 0
	if v := svc.Validate("acme-checkout"); v.Valid {
		t.Error("inactive link should not validate")
	}
	if v := svc.Validate("missing"); v.Valid {
		t.Error("missing link should not validate")
	}
}

func TestCountriesProjection(t *testing.T) {
	_, _, _, _, svc := acmeFixture()

	items, err := svc.Countries("acme-checkout")
	if err != nil {
		t.Fatalf("countries failed: %v", err)
	}
	if len(items) != 1 || items[0].Code != "US" || items[0].Currency != "USD" {
		t.Errorf("unexpected projection: %+v", items)
	}
}

func TestMethodsProjectionSkipsInvalidConfig(t *testing.T) {
	main, _, _, _, svc := acmeFixture()

	items, err := svc.Methods("acme-checkout", "US")
	if err != nil {
		t.Fatalf("methods failed: %v", err)
	}
	if len(items) != 1 || items[0].MethodID != "11" {
		t.Errorf("unexpected methods: %+v", items)
	}

	// payment_link 方式缺 URL：配置非法，不得对外暴露
	bad := ""
	main.method.Type = mainmodel.MethodPaymentLink
	main.method.PayURL = &bad
	items, err = svc.Methods("acme-checkout", "US")
	if err != nil {
		t.Fatalf("methods failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("invalid method leaked: %+v", items)
	}
}

func TestMethodsRejectsCountryOutsideLink(t *testing.T) {
	_, _, _, _, svc := acmeFixture()

	_, err := svc.Methods("acme-checkout", "DE")
	if constant.CodeOf(err) != constant.CodeInvalidCountry {
		t.Fatalf("expected InvalidCountry, got %v", err)
	}
}
