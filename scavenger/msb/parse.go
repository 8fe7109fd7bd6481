package msb

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParsedTable is the tabular content of an MSB report page.
type ParsedTable struct {
	Headers []string
	Rows    [][]string
}

var errNoTable = errors.New("no data table found in report")

// ParseTable extracts the first data table from a report page.
// The first row with header cells becomes Headers, every following row a data row.
func ParseTable(html []byte) (*ParsedTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errNoTable
	}

	parsed := &ParsedTable{}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		headerCells := row.Find("th")
		if headerCells.Length() > 0 && parsed.Headers == nil {
			headerCells.Each(func(_ int, cell *goquery.Selection) {
				parsed.Headers = append(parsed.Headers, cleanCell(cell.Text()))
			})
			return
		}

		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		var values []string
		cells.Each(func(_ int, cell *goquery.Selection) {
			values = append(values, cleanCell(cell.Text()))
		})
		parsed.Rows = append(parsed.Rows, values)
	})

	if parsed.Headers == nil && len(parsed.Rows) == 0 {
		return nil, errNoTable
	}

	return parsed, nil
}

// cleanCell normalizes whitespace inside a table cell.
func cleanCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
