package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/creditnote"
	"github.com/nordbooks/lineflow/internal/discount"
	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/flatten"
	"github.com/nordbooks/lineflow/internal/normalize"
	"github.com/nordbooks/lineflow/internal/port"
	"github.com/nordbooks/lineflow/internal/resolve"
)

// Outcome reports how one document ended up. Failed outcomes carry the
// reason; they are expected operational events, not errors.
type Outcome struct {
	DocumentID    uuid.UUID
	ExternalID    string
	LinesInserted int
	Failed        bool
	Reason        string
}

// DocumentProcessor turns one source document into invoice lines. Each
// document runs in its own transaction; a failure rolls back that document
// only and never aborts the batch.
type DocumentProcessor struct {
	store      port.Store
	engine     *discount.Engine
	suppliers  *resolve.SupplierResolver
	locations  *resolve.LocationResolver
	categories *resolve.CategoryResolver
	locale     normalize.Locale
	log        *zap.Logger
}

// NewDocumentProcessor creates a document processor.
func NewDocumentProcessor(store port.Store, engine *discount.Engine, suppliers *resolve.SupplierResolver, locations *resolve.LocationResolver, categories *resolve.CategoryResolver, locale normalize.Locale, log *zap.Logger) *DocumentProcessor {
	return &DocumentProcessor{
		store:      store,
		engine:     engine,
		suppliers:  suppliers,
		locations:  locations,
		categories: categories,
		locale:     locale,
		log:        log,
	}
}

// Flat-field aliases per concept, most specific first. OCR vendors are not
// consistent about labels.
var (
	supplierNameKeys = []string{"supplier_name", "supplier", "vendor_name"}
	supplierAddrKeys = []string{"supplier_address", "vendor_address"}
	receiverNameKeys = []string{"receiver_name", "delivery_name", "customer_name"}
	receiverAddrKeys = []string{"receiver_address", "delivery_address", "customer_address"}
	locationNameKeys = []string{"location_name", "receiver_name", "delivery_name"}
	totalAmountKeys  = []string{"total_amount", "total", "invoice_total"}
	subtotalKeys     = []string{"subtotal", "sub_total", "net_amount"}
	totalTaxKeys     = []string{"total_tax", "tax", "vat", "moms"}
)

func flatField(flat map[string]string, keys []string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(flat[k]); v != "" {
			return v
		}
	}
	return ""
}

// TrackerDocumentID derives the external tracker key from a source document's
// external ID. The tracker is keyed by the original filename without its
// extension.
func TrackerDocumentID(externalID string) string {
	return strings.TrimSuffix(externalID, ".pdf")
}

// Process runs the full pipeline for one document: flatten, map fields,
// reconcile discounts, normalize credit-note signs, resolve entities, insert
// lines and advance statuses. The snapshot must belong to the document's
// organization.
func (p *DocumentProcessor) Process(ctx context.Context, doc *domain.SourceDocument, snap *resolve.Snapshot) Outcome {
	log := p.log.With(
		zap.String("document_id", doc.ID.String()),
		zap.String("external_id", doc.ExternalID))

	out, err := p.process(ctx, doc, snap, log)
	if err != nil {
		return p.fail(ctx, doc, err.Error(), log)
	}
	return out
}

func (p *DocumentProcessor) process(ctx context.Context, doc *domain.SourceDocument, snap *resolve.Snapshot, log *zap.Logger) (Outcome, error) {
	fl, err := flatten.Parse(doc.Data)
	if err != nil {
		return Outcome{}, err
	}
	if len(fl.Rows) == 0 {
		return Outcome{}, fmt.Errorf("document has no line rows")
	}

	mappings, err := p.store.FieldMappings().ListByDataSource(ctx, doc.DataSourceID)
	if err != nil {
		return Outcome{}, err
	}

	// Header-level entity resolution runs once per document. Review records
	// are written outside the document transaction so they survive a later
	// rollback; the pending upsert is idempotent either way.
	hdr := header{
		supplierName: flatField(fl.Flat, supplierNameKeys),
		supplierAddr: flatField(fl.Flat, supplierAddrKeys),
		receiverName: flatField(fl.Flat, receiverNameKeys),
		receiverAddr: flatField(fl.Flat, receiverAddrKeys),
		locationName: flatField(fl.Flat, locationNameKeys),
	}

	supplierRes := resolve.Result{Pending: true}
	if hdr.supplierName != "" {
		supplierRes, err = p.suppliers.Resolve(ctx, p.store.SupplierMappings(), snap, hdr.supplierName, hdr.supplierAddr)
		if err != nil {
			return Outcome{}, err
		}
	}

	locationRes := resolve.Result{Pending: true}
	if hdr.locationName != "" || hdr.receiverName != "" {
		locationRes, err = p.locations.Resolve(ctx, p.store.LocationMappings(), snap, hdr.locationName, hdr.receiverAddr, hdr.receiverName)
		if err != nil {
			return Outcome{}, err
		}
	}

	// Every invoice line must carry a business unit. The document's own
	// assignment wins; otherwise it comes from the resolved location.
	businessUnit := doc.BusinessUnitID
	if businessUnit == nil && locationRes.ID != nil {
		businessUnit = snap.BusinessUnitFor(*locationRes.ID)
	}
	if businessUnit == nil {
		return Outcome{}, domain.ErrBusinessUnitMissing
	}

	rows := make([]*flatten.MappedRow, 0, len(fl.Rows))
	fields := make([]*domain.LineFields, 0, len(fl.Rows))
	for _, raw := range fl.Rows {
		row := flatten.ApplyMappings(raw, fl.Flat, mappings, p.locale)
		p.applyDiscountTokens(row)
		rows = append(rows, row)
		fields = append(fields, row.Fields)
	}

	pattern := p.engine.AnalyzePattern(fields)

	creditNote := false
	for _, f := range fields {
		p.engine.Reconcile(f, pattern)
		if creditnote.Normalize(f) {
			creditNote = true
		}
	}

	totals := p.documentTotals(fl.Flat, creditNote)

	tx, err := p.store.Begin(ctx)
	if err != nil {
		return Outcome{}, err
	}
	defer func() {
		// No-op after commit.
		_ = tx.Rollback()
	}()

	inserted := 0
	for _, row := range rows {
		line, err := p.buildLine(ctx, doc, row.Fields, snap, *businessUnit, hdr, supplierRes, locationRes, totals)
		if err != nil {
			return Outcome{}, err
		}
		if err := tx.InvoiceLines().Insert(ctx, line); err != nil {
			return Outcome{}, err
		}
		inserted++
	}

	if err := tx.SourceDocuments().MarkProcessed(ctx, doc.ID); err != nil {
		return Outcome{}, err
	}
	if err := tx.Commit(); err != nil {
		return Outcome{}, err
	}

	p.updateTracker(ctx, doc, locationRes.ID, log)

	log.Info("document processed",
		zap.Int("lines", inserted),
		zap.String("discount_pattern", string(pattern)),
		zap.Bool("credit_note", creditNote))
	return Outcome{DocumentID: doc.ID, ExternalID: doc.ExternalID, LinesInserted: inserted}, nil
}

// applyDiscountTokens parses the raw discount tokens onto the typed fields.
// Labeled columns go through the same context classification as the generic
// token; a bare value in an amount column can still turn out to be a
// percentage. Deployments with reliable columns can trust the label instead.
func (p *DocumentProcessor) applyDiscountTokens(row *flatten.MappedRow) {
	f := row.Fields

	token := row.Discount.Percentage
	if token == "" {
		token = row.Discount.Amount
	}
	if token == "" {
		token = row.Discount.Generic
	}
	if token == "" {
		return
	}

	if p.engine.TrustsLabeledColumns() {
		switch {
		case row.Discount.Percentage != "":
			trimmed := strings.TrimSuffix(strings.TrimSpace(row.Discount.Percentage), "%")
			f.DiscountPercentage = normalize.Number(trimmed, p.locale)
			return
		case row.Discount.Amount != "":
			f.DiscountAmount = normalize.Number(row.Discount.Amount, p.locale)
			return
		}
	}

	parsed := p.engine.ParseValue(token, f.UnitPrice, f.TotalPrice, p.locale)
	if parsed.Percent != nil {
		f.DiscountPercentage = parsed.Percent
	} else if parsed.Amount != nil {
		f.DiscountAmount = parsed.Amount
	}
}

type documentTotals struct {
	totalAmount *decimal.Decimal
	subtotal    *decimal.Decimal
	totalTax    *decimal.Decimal
}

// documentTotals reads the document-level totals from the flat fields. Credit
// notes carry negative totals like their lines.
func (p *DocumentProcessor) documentTotals(flat map[string]string, creditNote bool) documentTotals {
	parse := func(keys []string) *decimal.Decimal {
		d := normalize.Number(flatField(flat, keys), p.locale)
		if d != nil && creditNote && d.IsPositive() {
			neg := d.Neg()
			return &neg
		}
		return d
	}
	return documentTotals{
		totalAmount: parse(totalAmountKeys),
		subtotal:    parse(subtotalKeys),
		totalTax:    parse(totalTaxKeys),
	}
}

// header is the document-level identity text pulled from the flat fields.
type header struct {
	supplierName string
	supplierAddr string
	receiverName string
	receiverAddr string
	locationName string
}

func (p *DocumentProcessor) buildLine(ctx context.Context, doc *domain.SourceDocument, f *domain.LineFields, snap *resolve.Snapshot, businessUnit uuid.UUID, hdr header, supplierRes, locationRes resolve.Result, totals documentTotals) (*domain.InvoiceLine, error) {
	productName, productCode := "", ""
	if f.ProductName != nil {
		productName = *f.ProductName
	}
	if f.ProductCode != nil {
		productCode = *f.ProductCode
	}
	catRes, err := p.categories.Resolve(ctx, p.store.CategoryMappings(), snap.OrganizationID, productName, productCode, hdr.supplierName)
	if err != nil {
		return nil, err
	}

	line := &domain.InvoiceLine{
		OrganizationID:   doc.OrganizationID,
		BusinessUnitID:   businessUnit,
		DataSourceID:     doc.DataSourceID,
		SourceDocumentID: doc.ID,

		InvoiceNumber: f.InvoiceNumber,
		InvoiceDate:   f.InvoiceDate,
		DeliveryDate:  f.DeliveryDate,
		DueDate:       f.DueDate,

		SupplierID:        supplierRes.ID,
		LocationID:        locationRes.ID,
		CategoryMappingID: catRes.MappingID,
		CategoryID:        catRes.CategoryID,

		ProductCode:     f.ProductCode,
		Description:     f.ProductName,
		ProductCategory: f.ProductCategory,
		Quantity:        domain.NullDec(f.Quantity),
		UnitType:        f.UnitType,
		UnitSubtype:     f.UnitSubtype,
		SubQuantity:     domain.NullDec(f.SubQuantity),

		UnitPrice:              domain.NullDec(f.UnitPrice),
		UnitPriceAfterDiscount: domain.NullDec(f.UnitPriceAfterDiscount),
		DiscountAmount:         domain.NullDec(f.DiscountAmount),
		DiscountPercentage:     domain.NullDec(f.DiscountPercentage),
		TotalPrice:             domain.NullDec(f.TotalPrice),
		TotalPriceAfterDisc:    domain.NullDec(f.TotalPriceAfterDisc),
		TotalTax:               domain.NullDec(f.TotalTax),
		TotalAmount:            domain.NullDec(totals.totalAmount),
		Subtotal:               domain.NullDec(totals.subtotal),

		SupplierPending: supplierRes.Pending,
		LocationPending: locationRes.Pending,
		CategoryPending: catRes.Pending,

		DocumentType: f.DocumentType,
		Currency:     f.Currency,
	}
	if !line.TotalTax.Valid {
		line.TotalTax = domain.NullDec(totals.totalTax)
	}

	// Reporting-only conversion at static rates. Unknown currencies leave
	// the column null; an absent currency is read as DKK.
	currency := "DKK"
	if f.Currency != nil {
		currency = *f.Currency
	}
	base := f.TotalPriceAfterDisc
	if base == nil {
		base = f.TotalPrice
	}
	if base != nil {
		if converted := normalize.ToDKK(*base, currency); converted != nil {
			rounded := converted.Round(2)
			line.TotalPriceDKK = domain.NullDec(&rounded)
		}
	}

	// Raw header text retained for audit, whatever resolution decided.
	line.VariantSupplierName = hdr.supplierName
	line.VariantAddress = hdr.supplierAddr
	line.VariantReceiverName = hdr.receiverName
	line.VariantReceiverAddress = hdr.receiverAddr
	return line, nil
}

// fail marks the document failed, rolls the tracker forward to failed, and
// reports the outcome. Status writes here are best effort; the document will
// be swept again and the tracker guard keeps terminal statuses terminal.
func (p *DocumentProcessor) fail(ctx context.Context, doc *domain.SourceDocument, reason string, log *zap.Logger) Outcome {
	log.Warn("document failed", zap.String("reason", reason))

	if err := p.store.SourceDocuments().MarkFailed(ctx, doc.ID); err != nil {
		log.Error("marking document failed", zap.Error(err))
	}
	trackerID := TrackerDocumentID(doc.ExternalID)
	if err := p.store.Tracker().MarkFailed(ctx, trackerID, doc.OrganizationID, nil); err != nil {
		logTrackerErr(log, "marking tracker failed", trackerID, err)
	}
	return Outcome{DocumentID: doc.ID, ExternalID: doc.ExternalID, Failed: true, Reason: reason}
}

// updateTracker verifies the committed lines and advances the external
// tracker. Verification reads back through the pool on purpose: it proves
// the commit is visible, not just that the transaction believed it wrote.
func (p *DocumentProcessor) updateTracker(ctx context.Context, doc *domain.SourceDocument, locationID *uuid.UUID, log *zap.Logger) {
	trackerID := TrackerDocumentID(doc.ExternalID)

	count, err := p.store.InvoiceLines().CountByDocument(ctx, doc.ID, doc.OrganizationID)
	if err != nil {
		log.Error("verifying inserted lines", zap.Error(err))
		return
	}
	if count == 0 {
		log.Error("no lines visible after commit, tracker marked failed")
		if err := p.store.Tracker().MarkFailed(ctx, trackerID, doc.OrganizationID, locationID); err != nil {
			logTrackerErr(log, "marking tracker failed", trackerID, err)
		}
		return
	}
	if err := p.store.Tracker().MarkProcessed(ctx, trackerID, doc.OrganizationID, locationID); err != nil {
		logTrackerErr(log, "marking tracker processed", trackerID, err)
	}
}

// Documents ingested outside the tracked flow have no tracker record; that is
// expected, not an error.
func logTrackerErr(log *zap.Logger, msg, trackerID string, err error) {
	if errors.Is(err, domain.ErrTrackerNotFound) {
		log.Warn("no tracker record for document", zap.String("tracker_document_id", trackerID))
		return
	}
	log.Error(msg, zap.Error(err))
}
