package services

import (
	"encoding/csv"
	"io"
	"strings"

	"menuboard-api/models"
)

// csvHeader is the fixed interchange header. Names and order are part of the
// compatibility surface.
var csvHeader = []string{"Name", "Description", "Price", "Course Type", "Custom Tags", "Allergens"}

// currencySymbols are stripped from the front of imported prices.
var currencySymbols = []string{"$", "£", "€"}

// ImportResult tallies a best-effort CSV import. Failed rows never abort
// the remaining ones.
type ImportResult struct {
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors,omitempty"`
}

// RowError records why one data row was rejected. Row is the 1-based line
// number in the file, counting the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ExportCSV serializes every item of the restaurant (live and draft) in the
// fixed column order, double-quoting every field. Returns ErrNotFound when
// the restaurant is not the acting user's, without distinguishing absence.
func (s *MenuService) ExportCSV(restaurantID, actingUser uint) (string, error) {
	if !s.ownsRestaurant(restaurantID, actingUser) {
		return "", ErrNotFound
	}
	items, err := s.List(restaurantID, nil)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeQuotedRow(&b, csvHeader)
	for _, item := range items {
		courseType := ""
		customTags := []string(nil)
		if len(item.CourseTags) > 0 {
			courseType = item.CourseTags[0]
			customTags = item.CourseTags[1:]
		}
		writeQuotedRow(&b, []string{
			item.Name,
			item.Description,
			item.Price,
			courseType,
			strings.Join(customTags, ";"),
			strings.Join(item.Allergens.Names(), ";"),
		})
	}
	return b.String(), nil
}

// writeQuotedRow emits one CSV record with every cell quoted, doubling any
// embedded quotes. encoding/csv only quotes when forced, so this is manual.
func writeQuotedRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// ImportCSV parses the supplied text and creates one item per valid data row
// through the same validation path as interactive creation. The whole import
// is rejected only for a missing or incomplete header; individual bad rows
// are tallied and skipped.
func (s *MenuService) ImportCSV(restaurantID uint, r io.Reader, actingUser uint) (ImportResult, error) {
	var res ImportResult
	if !s.ownsRestaurant(restaurantID, actingUser) {
		return res, ErrNotFound
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return res, invalid("file", "missing or unreadable header row")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, want := range csvHeader {
		if _, ok := col[strings.ToLower(want)]; !ok {
			return res, invalid("file", "header is missing column '"+want+"'")
		}
	}

	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, RowError{Row: line, Message: "malformed row: " + err.Error()})
			continue
		}
		if len(rec) != len(header) {
			res.Failed++
			res.Errors = append(res.Errors, RowError{Row: line, Message: "wrong column count"})
			continue
		}

		cell := func(name string) string {
			return strings.TrimSpace(rec[col[strings.ToLower(name)]])
		}

		tags := []string{cell("Course Type")}
		tags = append(tags, strings.Split(cell("Custom Tags"), ";")...)

		var allergens models.Allergens
		for _, name := range strings.Split(cell("Allergens"), ";") {
			allergens.SetFlag(strings.ToLower(strings.TrimSpace(name)), true)
		}

		_, err = s.Create(CreateItemInput{
			RestaurantID: restaurantID,
			Name:         cell("Name"),
			Description:  cell("Description"),
			Price:        stripCurrency(cell("Price")),
			CourseTags:   tags,
			Allergens:    allergens,
		}, actingUser)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, RowError{Row: line, Message: err.Error()})
			continue
		}
		res.Success++
	}
	return res, nil
}

// stripCurrency drops one leading currency symbol from a price cell.
func stripCurrency(price string) string {
	for _, sym := range currencySymbols {
		if strings.HasPrefix(price, sym) {
			return strings.TrimSpace(strings.TrimPrefix(price, sym))
		}
	}
	return price
}
