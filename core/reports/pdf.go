// Package reports renders consultation reports as PDF documents and
// delivers them: webhook delivery with the document inlined, best-effort
// print delivery, and interview summary forwarding. Documents are generated
// on demand and never persisted.
package reports

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	booth "github.com/cekatlabs/booth-core/core"
	"github.com/cekatlabs/booth-core/core/booths"
)

// Generator renders consultation data into a themed A4 document.
type Generator struct {
	catalog *booths.Catalog
}

func NewGenerator(catalog *booths.Catalog) *Generator {
	if catalog == nil {
		catalog = booths.NewCatalog()
	}
	return &Generator{catalog: catalog}
}

// Generate returns the rendered PDF bytes for a booth's consultation.
func (g *Generator) Generate(data booth.ConsultationData, boothID string) ([]byte, error) {
	config, _ := g.catalog.Lookup(boothID)
	r, gr, b := hexToRGB(config.Theme.Primary)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s Consultation Report", config.Name), false)
	pdf.AddPage()

	pdf.SetFillColor(r, gr, b)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(10, 9)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s Consultation Report", config.Name), "", 1, "L", false, 0, "")

	pdf.SetTextColor(30, 30, 30)
	pdf.SetY(36)

	g.section(pdf, "Patient Information", [][2]string{
		{"Name", data.Name},
		{"Age", data.Age},
		{"Gender", data.Gender},
	})
	g.section(pdf, "Health Metrics", [][2]string{
		{"Height", data.Height},
		{"Weight", data.Weight},
		{"Ideal Weight", data.IdealWeight},
		{"BMI", data.BMI},
		{"BMI Status", data.BMIStatus},
		{"Goal", data.Goal},
		{"Medical History", data.MedicalHistory},
		{"Exercise", data.Exercise},
		{"Calorie Recommendation", data.CalorieRecommendation},
	})
	g.section(pdf, "Meal Plan", [][2]string{
		{"Breakfast", data.BreakfastMenu},
		{"Lunch", data.LunchMenu},
		{"Dinner", data.DinnerMenu},
		{"Snack", data.SnackMenu},
	})

	recommendation := data.Recommendation
	if item, ok := config.Recommendation(recommendation); ok {
		recommendation = fmt.Sprintf("%s (%s)", item.Name, item.Description)
	}
	g.section(pdf, "Recommendation", [][2]string{
		{"Recommended", recommendation},
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) section(pdf *fpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(190, 9, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "-"
		}
		pdf.CellFormat(55, 7, row[0], "", 0, "L", false, 0, "")
		pdf.MultiCell(135, 7, value, "", "L", false)
	}
	pdf.Ln(3)
}

// hexToRGB parses "#rrggbb", falling back to a neutral dark gray.
func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 40, 40, 40
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 40, 40, 40
	}
	return int(value >> 16 & 0xff), int(value >> 8 & 0xff), int(value & 0xff)
}
