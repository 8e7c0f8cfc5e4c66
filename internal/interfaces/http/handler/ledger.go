package handler

import (
	"errors"
	"net/http"
	"time"

	appaccounting "github.com/facturas/backend/internal/application/accounting"
	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/facturas/backend/internal/interfaces/http/dto"
	"github.com/facturas/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerHandler exposes the bookkeeping core over HTTP: posting issued
// invoices, recording payments, rolling back commission billings,
// reconciling unposted payments and reading the ledger.
type LedgerHandler struct {
	BaseHandler
	posting        *appaccounting.InvoicePostingService
	payments       *appaccounting.PaymentService
	rollback       *appaccounting.RollbackService
	reconciliation *appaccounting.ReconciliationService
	entryRepo      accounting.LedgerEntryRepository
	idempotency    shared.IdempotencyStore
	idemConfig     shared.IdempotencyConfig
	logger         *zap.Logger
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(
	posting *appaccounting.InvoicePostingService,
	payments *appaccounting.PaymentService,
	rollback *appaccounting.RollbackService,
	reconciliation *appaccounting.ReconciliationService,
	entryRepo accounting.LedgerEntryRepository,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	logger *zap.Logger,
) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{
		posting:        posting,
		payments:       payments,
		rollback:       rollback,
		reconciliation: reconciliation,
		entryRepo:      entryRepo,
		idempotency:    idempotency,
		idemConfig:     idemConfig,
		logger:         logger,
	}
}

// RegisterRoutes registers the ledger routes under the API group
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies/:companyId")
	{
		companies.POST("/invoices/:id/post", h.PostInvoice)
		companies.POST("/invoices/:id/payments", h.ApplyPayment)
		companies.POST("/documents/:id/rollback", h.RollbackDocument)
		companies.POST("/reconciliation/payments", h.ReconcilePayments)
		companies.GET("/ledger-entries", h.ListLedgerEntries)
		companies.GET("/ledger-entries/:id", h.GetLedgerEntry)
	}
}

// PostInvoice posts an issued invoice to the ledger. The idempotency
// store short-circuits repeats of the same posting; the persistent guard
// underneath is the invoice's ledger link.
func (h *LedgerHandler) PostInvoice(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	idemKey := "invoice-post:" + invoiceID.String()
	if h.idemConfig.Enabled && h.idempotency != nil {
		processed, err := h.idempotency.IsProcessed(c.Request.Context(), idemKey)
		if err != nil {
			h.logger.Warn("idempotency check failed, continuing with persistent guard",
				zap.String("invoice_id", invoiceID.String()),
				zap.Error(err))
		} else if processed {
			h.Error(c, http.StatusConflict, dto.ErrCodeAlreadyPosted, "Invoice posting already processed")
			return
		}
	}

	entry, err := h.posting.PostInvoiceIssued(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if h.idemConfig.Enabled && h.idempotency != nil {
		if _, err := h.idempotency.MarkProcessed(c.Request.Context(), idemKey, h.idemConfig.TTL); err != nil {
			h.logger.Warn("failed to mark posting as processed",
				zap.String("invoice_id", invoiceID.String()),
				zap.Error(err))
		}
	}

	h.Created(c, entry)
}

// ApplyPaymentRequest is the body for recording a collection
type ApplyPaymentRequest struct {
	Date      string  `json:"date"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required,oneof=CASH TRANSFER CHECK CARD OTHER"`
	Reference string  `json:"reference"`
	Notes     string  `json:"notes"`
}

// ApplyPayment records a payment against an invoice and posts the
// collection entry. A committed payment whose ledger posting failed is
// reported as a conflict that still carries the allocation.
func (h *LedgerHandler) ApplyPayment(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}
	actor, err := getActor(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID header")
		return
	}

	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	paymentDate := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Date must be YYYY-MM-DD")
			return
		}
		paymentDate = parsed
	}

	input := appaccounting.PaymentInput{
		Date:      paymentDate,
		Amount:    decimal.NewFromFloat(req.Amount),
		Method:    accounting.PaymentMethod(req.Method),
		Reference: req.Reference,
		Notes:     req.Notes,
		Actor:     actor,
	}

	allocation, err := h.payments.ApplyPayment(c.Request.Context(), companyID, invoiceID, input)
	if err != nil {
		if errors.Is(err, accounting.ErrPaymentLedgerFailure) && allocation != nil {
			c.JSON(http.StatusConflict, dto.NewPartialFailureResponse(
				dto.ErrCodePaymentLedgerFailure,
				accounting.ErrPaymentLedgerFailure.Message,
				getRequestID(c),
				allocation,
			))
			return
		}
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, allocation)
}

// RollbackDocument unwinds a commission-billing invoice
func (h *LedgerHandler) RollbackDocument(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	summary, err := h.rollback.Rollback(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// ReconcilePayments reposts payments that lost their ledger link
func (h *LedgerHandler) ReconcilePayments(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	report, err := h.reconciliation.RepostUnlinkedPayments(c.Request.Context(), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// LedgerEntryListFilter holds the query parameters for listing entries
type LedgerEntryListFilter struct {
	dto.ListRequest
	Status       string `form:"status" binding:"omitempty,oneof=CONFIRMED"`
	DocumentType string `form:"document_type" binding:"omitempty,oneof=INVOICE PAYMENT"`
	SourceID     string `form:"source_id" binding:"omitempty,uuid"`
	FromDate     string `form:"from_date"`
	ToDate       string `form:"to_date"`
}

// ListLedgerEntries lists a company's ledger entries with pagination
func (h *LedgerHandler) ListLedgerEntries(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	var req LedgerEntryListFilter
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := accounting.LedgerEntryFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
	}
	if req.Status != "" {
		status := accounting.EntryStatus(req.Status)
		filter.Status = &status
	}
	if req.DocumentType != "" {
		docType := accounting.DocumentType(req.DocumentType)
		filter.DocumentType = &docType
	}
	if req.SourceID != "" {
		sourceID, err := uuid.Parse(req.SourceID)
		if err == nil {
			filter.SourceID = &sourceID
		}
	}
	if req.FromDate != "" {
		if t, err := time.Parse("2006-01-02", req.FromDate); err == nil {
			filter.FromDate = &t
		}
	}
	if req.ToDate != "" {
		if t, err := time.Parse("2006-01-02", req.ToDate); err == nil {
			// end of day
			t = t.Add(24*time.Hour - time.Second)
			filter.ToDate = &t
		}
	}

	entries, err := h.entryRepo.FindByCompany(c.Request.Context(), companyID, filter)
	if err != nil {
		h.InternalError(c, "Failed to list ledger entries")
		return
	}
	total, err := h.entryRepo.CountByCompany(c.Request.Context(), companyID, filter)
	if err != nil {
		h.InternalError(c, "Failed to count ledger entries")
		return
	}

	h.SuccessWithMeta(c, entries, total, req.Page, req.PageSize)
}

// GetLedgerEntry returns one entry with its lines
func (h *LedgerHandler) GetLedgerEntry(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid entry ID")
		return
	}

	entry, err := h.entryRepo.FindByID(c.Request.Context(), entryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if entry.CompanyID != companyID {
		h.NotFound(c, "Ledger entry not found")
		return
	}

	h.Success(c, entry)
}
