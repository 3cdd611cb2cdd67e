package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bluedrop/aquarate/internal/providers/pdf"
	quotedomain "github.com/bluedrop/aquarate/internal/quote/domain"
	"github.com/bluedrop/aquarate/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type CreateQuoteRequest struct {
	Gallons int64  `json:"gallons"`
	State   string `json:"state"`
	Date    string `json:"date"`
}

type PreviewQuoteRequest struct {
	Gallons int64  `json:"gallons"`
	State   string `json:"state"`
}

// QuoteResponse is the client-facing projection of a ledger entry. Money
// fields are rounded to cents here and nowhere else.
type QuoteResponse struct {
	ID             string `json:"id"`
	SequenceNumber int64  `json:"sequence_number"`
	Gallons        int64  `json:"gallons"`
	Address        string `json:"delivery_address"`
	Date           string `json:"delivery_date"`
	UnitPrice      string `json:"unit_price"`
	TotalCost      string `json:"total_cost"`
	CreatedAt      string `json:"created_at"`
}

func quoteResponse(q quotedomain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID.String(),
		SequenceNumber: q.SequenceNumber,
		Gallons:        q.Gallons,
		Address:        q.DeliveryAddress,
		Date:           q.DeliveryDate.Format(dateLayout),
		UnitPrice:      q.UnitPrice.StringFixed(2),
		TotalCost:      q.TotalCost().StringFixed(2),
		CreatedAt:      q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) CreateQuote(c *gin.Context) {
	username, ok := usernameFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var date time.Time
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
		if err != nil {
			AbortWithError(c, quotedomain.ErrInvalidDate)
			return
		}
		date = parsed
	}

	quote, err := s.quoteSvc.Create(c.Request.Context(), quotedomain.CreateQuoteRequest{
		Username:     username,
		Gallons:      req.Gallons,
		State:        req.State,
		DeliveryDate: date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quoteResponse(*quote))
}

func (s *Server) PreviewQuote(c *gin.Context) {
	username, ok := usernameFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req PreviewQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	breakdown, err := s.quoteSvc.Preview(c.Request.Context(), quotedomain.PreviewRequest{
		Username: username,
		Gallons:  req.Gallons,
		State:    req.State,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"base_price": breakdown.BasePrice.StringFixed(2),
		"margin":     breakdown.Margin.StringFixed(2),
		"unit_price": breakdown.UnitPrice.StringFixed(2),
		"total_due":  breakdown.TotalDue.StringFixed(2),
	})
}

func (s *Server) ListQuotes(c *gin.Context) {
	username, ok := usernameFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quotes, info, err := s.quoteSvc.History(c.Request.Context(), username, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, quoteResponse(q))
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes":    out,
		"page_info": info,
	})
}

func (s *Server) CountQuotes(c *gin.Context) {
	username, ok := usernameFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	count, err := s.quoteSvc.HistoryCount(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) QuotePDF(c *gin.Context) {
	username, ok := usernameFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	quote, err := s.quoteSvc.Get(c.Request.Context(), username, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profile, err := s.profileSvc.Get(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc := pdf.QuoteDocument{
		QuoteNumber:  fmt.Sprintf("%s-%d", strings.ToUpper(username), quote.SequenceNumber),
		CustomerName: profile.FullName,
		Address:      quote.DeliveryAddress,
		DeliveryDate: quote.DeliveryDate.Format(dateLayout),
		CreatedAt:    quote.CreatedAt.UTC().Format(dateLayout),
		Gallons:      fmt.Sprintf("%d", quote.Gallons),
		UnitPrice:    quote.UnitPrice.StringFixed(2),
		TotalDue:     quote.TotalCost().StringFixed(2),
	}

	reader, err := s.pdfProvider.GenerateQuote(c.Request.Context(), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quote-%s-%d.pdf", username, quote.SequenceNumber))
	c.Data(http.StatusOK, "application/pdf", body)
}
