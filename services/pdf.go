package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type PDFData struct {
	TravelerName string
	Plan         *ItineraryPlan
	GeneratedAt  time.Time
}

// GeneratePDFBytes renders an itinerary document and returns raw bytes
// (no filesystem needed — the bytes are served straight from the handler).
func GeneratePDFBytes(data PDFData) ([]byte, error) {
	if data.Plan == nil {
		return nil, fmt.Errorf("pdf: no plan to render")
	}
	plan := data.Plan

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "IndiaTravel", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Personalized Trip Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is a suggested itinerary, not a booking confirmation. Prices are estimates and subject to change."
	if plan.Source == SourceRuleBased {
		disclaimer = "Curated from our itinerary library. Not a booking confirmation. Prices are estimates and subject to change."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	paragraph := func(text string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, text, "", "L", false)
	}

	// ── Traveler Info ─────────────────────────────────────────
	sectionHeader("Traveler Information")
	name := data.TravelerName
	if name == "" {
		name = "Guest Traveler"
	}
	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	row("Name", name)
	row("Generated", generatedAt.Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Destination", plan.Destination)
	row("Duration", fmt.Sprintf("%d days", plan.Days))
	row("Travel Month", plan.Month)
	row("Budget Estimate", plan.BudgetEstimate)
	row("Accommodation", plan.HotelType)
	pdf.Ln(4)

	// ── Day-by-day Itinerary ──────────────────────────────────
	sectionHeader("Day-by-day Itinerary")
	for _, dayKey := range plan.DayKeys() {
		entry, ok := plan.Itinerary[dayKey]
		if !ok {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(13, 24, 37)
		title := dayKey
		if entry.Summary != "" {
			title += " - " + entry.Summary
		}
		pdf.CellFormat(170, 6, title, "", 1, "L", false, 0, "")
		paragraph(entry.Activity)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(170, 5, "Stay: "+entry.Hotel+"  |  Meals: "+entry.Meals, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	pdf.Ln(2)

	// ── Highlights ────────────────────────────────────────────
	sectionHeader("Trip Highlights")
	for _, h := range plan.Highlights {
		paragraph("- " + h)
	}
	pdf.Ln(4)

	// ── Tips ──────────────────────────────────────────────────
	if len(plan.Tips) > 0 {
		sectionHeader("Traveler Tips")
		for _, tip := range plan.Tips {
			paragraph("- " + tip)
		}
		pdf.Ln(4)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by IndiaTravel Trip Planner · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
