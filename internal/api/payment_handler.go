package api

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/service"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// --- DTOs ---

type SubmitPaymentRequest struct {
	UserID        string  `json:"userId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Currency      string  `json:"currency" binding:"omitempty,len=3"`
	ScreenshotURL string  `json:"screenshotUrl"`
	PlanName      string  `json:"planName" binding:"required"`
	Notes         string  `json:"notes"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

// UpdatePaymentRequest is the generic status update used by the console's
// review dialog.
type UpdatePaymentRequest struct {
	Status domain.PaymentStatus `json:"status" binding:"required"`
	Notes  string               `json:"notes"`
}

type PaymentResponse struct {
	ID                    string               `json:"id"`
	UserID                string               `json:"userId"`
	UserName              string               `json:"userName"`
	UserEmail             string               `json:"userEmail"`
	Amount                float64              `json:"amount"`
	Currency              string               `json:"currency"`
	ScreenshotURL         string               `json:"screenshotUrl"`
	ResolvedScreenshotURL string               `json:"resolvedScreenshotUrl,omitempty"`
	Date                  time.Time            `json:"date"`
	Status                domain.PaymentStatus `json:"status"`
	PlanName              string               `json:"planName"`
	Notes                 string               `json:"notes,omitempty"`
	ProcessedAt           *time.Time           `json:"processedAt,omitempty"`
}

func (h *PaymentHandler) toResponse(ctx context.Context, p *domain.PaymentRequest) (PaymentResponse, error) {
	resolved, err := h.paymentService.ScreenshotURL(ctx, p)
	if err != nil {
		return PaymentResponse{}, err
	}
	return PaymentResponse{
		ID:                    p.ID,
		UserID:                p.UserID,
		UserName:              p.UserName,
		UserEmail:             p.UserEmail,
		Amount:                p.Amount,
		Currency:              p.Currency,
		ScreenshotURL:         p.ScreenshotURL,
		ResolvedScreenshotURL: resolved,
		Date:                  p.Date,
		Status:                p.Status,
		PlanName:              p.PlanName,
		Notes:                 p.Notes,
		ProcessedAt:           p.ProcessedAt,
	}, nil
}

func (h *PaymentHandler) respond(c *gin.Context, code int, p *domain.PaymentRequest) {
	resp, err := h.toResponse(c.Request.Context(), p)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(code, resp)
}

// --- Handlers ---

// ListPayments godoc
// @Summary List payment requests for review
// @Description Pending requests first, then newest submission first.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PaymentResponse "without page/pageSize"
// @Success 200 {object} service.Page[PaymentResponse] "with page or pageSize"
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	page, err := h.paymentService.ListPayments(ctx, q)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]PaymentResponse, 0, len(page.Items))
	for i := range page.Items {
		r, err := h.toResponse(ctx, &page.Items[i])
		if err != nil {
			handleServiceError(c, err)
			return
		}
		items = append(items, r)
	}
	writeList(c, q, service.Page[PaymentResponse]{
		Items:    items,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, p)
}

func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	p, err := h.paymentService.SubmitPayment(c.Request.Context(), service.PaymentInput{
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ScreenshotURL: req.ScreenshotURL,
		PlanName:      req.PlanName,
		Notes:         req.Notes,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, p)
}

// ApprovePayment godoc
// @Summary Approve a pending payment request
// @Description Marks the request Approved and activates the member's subscription on the purchased plan.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment request ID"
// @Success 200 {object} PaymentResponse
// @Failure 404 {object} gin.H "Payment request not found"
// @Failure 409 {object} gin.H "Payment request already processed"
// @Router /payments/{id}/approve [post]
func (h *PaymentHandler) ApprovePayment(c *gin.Context) {
	p, err := h.paymentService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, p)
}

// RejectPayment godoc
// @Summary Reject a pending payment request
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment request ID"
// @Param request body RejectPaymentRequest true "Rejection reason"
// @Success 200 {object} PaymentResponse
// @Failure 400 {object} gin.H "Reason missing"
// @Failure 404 {object} gin.H "Payment request not found"
// @Failure 409 {object} gin.H "Payment request already processed"
// @Router /payments/{id}/reject [post]
func (h *PaymentHandler) RejectPayment(c *gin.Context) {
	var req RejectPaymentRequest
	// An empty body is an empty reason, which the service rejects.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	p, err := h.paymentService.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, p)
}

func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	p, err := h.paymentService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, p)
}
