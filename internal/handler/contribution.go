package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nagarjunr/donation-tracker/internal/model"
	"github.com/nagarjunr/donation-tracker/internal/queue"
	"github.com/nagarjunr/donation-tracker/internal/repository"
	queue_publisher "github.com/nagarjunr/donation-tracker/internal/service"
)

// ContributionHandler serves bill lookups and contribution recording.
// A bill is identified by its composite key: the booklet code from the
// URL (e.g. "B1") plus the page number within the booklet.
type ContributionHandler struct {
	Bills *repository.BillRepo
}

// NewContributionHandler constructs a ContributionHandler. The repository must be non-nil.
func NewContributionHandler(bills *repository.BillRepo) *ContributionHandler {
	if bills == nil {
		panic("nil repository passed to NewContributionHandler")
	}
	return &ContributionHandler{Bills: bills}
}

// billKeyFromPath reads and validates the composite bill key from the
// :code and :id path parameters.
func billKeyFromPath(c echo.Context) (string, uint64, string) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return "", 0, "bill book code is required"
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return "", 0, "invalid bill id"
	}
	return code, id, ""
}

// ListContributions handles GET /v1/contributions. It returns every
// donated line across all bills with donor and item details, the full
// donation register for the event.
func (h *ContributionHandler) ListContributions(c echo.Context) error {
	records, err := h.Bills.ListContributions(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"contributions": records})
}

// GetContribution handles GET /v1/bills/:code/:id. It returns the
// donor's name and every line contributed under the bill, or 404 when
// no records exist for the key.
func (h *ContributionHandler) GetContribution(c echo.Context) error {
	code, id, msg := billKeyFromPath(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	donar, lines, err := h.Bills.GetContribution(c.Request().Context(), code, id)
	if err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no records found with this bill"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"donar_name":    donar,
		"contributions": lines,
	})
}

// BillExists handles GET /v1/bills/:code/:id/exists. The UI uses this
// before recording to decide whether to warn the operator that lines
// will be appended to an existing bill.
func (h *ContributionHandler) BillExists(c echo.Context) error {
	code, id, msg := billKeyFromPath(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	exists, err := h.Bills.Exists(c.Request().Context(), code, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"exists": exists})
}

// RecordContribution handles POST /v1/contributions. The body carries
// the bill key, donor details and parallel item/quantity lists. The
// bill row and all transaction rows are written in one transaction;
// any failure rolls the whole unit back. When the bill key already
// exists the request must set "append": true to add lines to the
// existing bill, otherwise a 409 is returned so the operator can
// confirm. On success a donation.recorded event is published
// fire-and-forget.
func (h *ContributionHandler) RecordContribution(c echo.Context) error {
	var body struct {
		BillBookCode string    `json:"bill_book_code"`
		BillID       uint64    `json:"bill_id"`
		DonarName    string    `json:"donar_name"`
		DonarPhone   string    `json:"donar_phone_num"`
		ItemIDs      []uint64  `json:"item_ids"`
		Quantities   []float64 `json:"quantities"`
		Append       bool      `json:"append"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.BillBookCode = strings.TrimSpace(body.BillBookCode)
	body.DonarName = strings.TrimSpace(body.DonarName)
	if body.BillBookCode == "" || body.BillID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bill_book_code and bill_id are required"})
	}
	if body.DonarName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "donar name is required"})
	}
	lines, msg := zipLines(body.ItemIDs, body.Quantities)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	bill := model.BillBook{
		BillBookCode: body.BillBookCode,
		BillID:       body.BillID,
		DonarName:    body.DonarName,
		DonarPhone:   body.DonarPhone,
	}
	err := h.Bills.RecordContribution(c.Request().Context(), bill, lines, body.Append)
	if err != nil {
		if errors.Is(err, repository.ErrBillExists) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "bill already exists; set append to true to add lines to it",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record contribution"})
	}

	staffID, _ := getStaffID(c)
	ev := queue.DonationRecordedEvent{
		BillBookCode: bill.BillBookCode,
		BillID:       bill.BillID,
		DonarName:    bill.DonarName,
		Lines:        eventLines(lines),
		RecordedBy:   staffID,
		RecordedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishDonationRecorded(c.Request().Context(), ev); err != nil {
		c.Logger().Warnf("publish donation.recorded failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"bill_book_code": bill.BillBookCode,
		"bill_id":        bill.BillID,
		"lines_recorded": len(lines),
	})
}

// eventLines converts repository request lines into queue payload lines.
func eventLines(lines []repository.RequestLine) []queue.EventLine {
	out := make([]queue.EventLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, queue.EventLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return out
}
