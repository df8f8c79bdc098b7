package services

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/go-pdf/fpdf"
)

// ErrGenerationFailed marks a renderer failure partway through a document.
// Partial output is discarded and never persisted; the caller offers a retry.
var ErrGenerationFailed = errors.New("report generation failed")

const (
	pdfMargin     = 20.0
	pdfLineHeight = 5.0
)

// PDFService renders a property's full inspection tree into a paginated A4
// document: property summary, per-room checklist grouped by category with
// severity and notes, and a footer on every page. Purely a formatting pass
// with no state of its own.
type PDFService struct {
	log logger.Logger
}

func NewPDFService() *PDFService {
	return &PDFService{
		log: logger.New("pdfService"),
	}
}

func (s *PDFService) Generate(property *Property, options PDFOptions) ([]byte, error) {
	log := s.log.Function("Generate")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("")

	pageWidth, pageHeight := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pdfMargin

	pdf.SetFooterFunc(func() {
		pdf.SetY(pageHeight - 14)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentWidth, 4,
			fmt.Sprintf("DepositDefender Report - Page %d of {nb}", pdf.PageNo()),
			"", 1, "C", false, 0, "")
		pdf.CellFormat(contentWidth, 4,
			fmt.Sprintf("Generated on %s", time.Now().Format("2006-01-02 15:04")),
			"", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	checkPageBreak := func(requiredSpace float64) {
		if pdf.GetY()+requiredSpace > pageHeight-pdfMargin {
			pdf.AddPage()
		}
	}

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentWidth, 10, "Property Inspection Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(contentWidth, 8,
		fmt.Sprintf("Generated: %s", time.Now().Format("January 2, 2006")),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Property information
	checkPageBreak(40)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth, 8, "Property Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, pdfLineHeight, "Address: "+property.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, pdfLineHeight, "Tenant: "+property.TenantName, "", 1, "L", false, 0, "")

	moveOutDate := property.MoveOutDate
	if moveOutDate == "" {
		moveOutDate = "Not specified"
	}
	pdf.CellFormat(contentWidth, pdfLineHeight, "Move-out Date: "+moveOutDate, "", 1, "L", false, 0, "")

	if property.LandlordName != nil && *property.LandlordName != "" {
		pdf.CellFormat(contentWidth, pdfLineHeight, "Landlord: "+*property.LandlordName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Summary statistics
	checkPageBreak(30)
	totalItems := 0
	completedItems := 0
	issuesFound := 0
	for _, room := range property.Rooms {
		totalItems += room.TotalItems
		completedItems += room.CompletedItems
		for _, item := range room.Items {
			if item.HasIssue() {
				issuesFound++
			}
		}
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentWidth, 8, "Inspection Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, pdfLineHeight,
		fmt.Sprintf("Total Items Inspected: %d/%d", completedItems, totalItems),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, pdfLineHeight,
		fmt.Sprintf("Issues Identified: %d", issuesFound),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, pdfLineHeight,
		fmt.Sprintf("Overall Progress: %d%%", int(math.Round(property.OverallProgress))),
		"", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Room details
	for _, room := range property.Rooms {
		checkPageBreak(50)

		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(contentWidth, 7, room.Name, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidth, 6,
			fmt.Sprintf("Progress: %d/%d items (%d%%)",
				room.CompletedItems, room.TotalItems, int(math.Round(room.ProgressPercentage))),
			"", 1, "L", false, 0, "")

		s.writeRoomItems(pdf, room, options, contentWidth, checkPageBreak)
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, log.Err(
			"failed to render report",
			fmt.Errorf("%w: %v", ErrGenerationFailed, err),
			"propertyID", property.ID,
		)
	}

	return buf.Bytes(), nil
}

func (s *PDFService) writeRoomItems(
	pdf *fpdf.Fpdf,
	room Room,
	options PDFOptions,
	contentWidth float64,
	checkPageBreak func(float64),
) {
	// Categories keep the item order they first appear in.
	categories := []string{}
	itemsByCategory := map[string][]ChecklistItem{}
	for _, item := range room.Items {
		category := item.Category
		if category == "" {
			category = "General"
		}
		if _, seen := itemsByCategory[category]; !seen {
			categories = append(categories, category)
		}
		itemsByCategory[category] = append(itemsByCategory[category], item)
	}

	for _, category := range categories {
		checkPageBreak(20)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetX(pdfMargin + 5)
		pdf.CellFormat(contentWidth-5, pdfLineHeight, category, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, item := range itemsByCategory[category] {
			checkPageBreak(12)

			status := "[ ]"
			if item.Completed {
				status = "[x]"
			}
			severityText := ""
			if item.Severity != "" {
				severityText = fmt.Sprintf(" [%s]", strings.ToUpper(string(item.Severity)))
			}

			pdf.SetX(pdfMargin + 10)
			pdf.CellFormat(contentWidth-10, pdfLineHeight,
				fmt.Sprintf("%s %s%s", status, item.Text, severityText),
				"", 1, "L", false, 0, "")

			if options.IncludeNotes && item.Notes != "" {
				pdf.SetFont("Helvetica", "I", 10)
				noteLines := pdf.SplitText("Note: "+item.Notes, contentWidth-15)
				for _, line := range noteLines {
					checkPageBreak(4)
					pdf.SetX(pdfMargin + 15)
					pdf.CellFormat(contentWidth-15, 4, line, "", 1, "L", false, 0, "")
				}
				pdf.SetFont("Helvetica", "", 10)
			}

			if options.IncludePhotos && len(item.Photos) > 0 {
				checkPageBreak(4)
				pdf.SetFont("Helvetica", "I", 10)
				pdf.SetX(pdfMargin + 15)
				pdf.CellFormat(contentWidth-15, 4,
					fmt.Sprintf("Photos: %d attached", len(item.Photos)),
					"", 1, "L", false, 0, "")
				pdf.SetFont("Helvetica", "", 10)
			}
		}
		pdf.Ln(3)
	}
}
