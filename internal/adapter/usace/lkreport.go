package usace

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/anchorpoint/lakewatch/internal/domain"
)

// ErrNoTable signals that the lake report page no longer carries the expected
// data table. Unlike a malformed row, this fails the whole scrape: there is
// nothing to extract.
var ErrNoTable = errors.New("lake report table not found")

// minReportCells guards against partial and decorative rows; real data rows
// in the lake report carry at least 13 cells.
const minReportCells = 13

// Column positions in the lake report table, 0-indexed.
const (
	colBasin       = 0
	colProject     = 1
	colTodayPool   = 5
	colDeviation   = 6
	colChange24h   = 7
	colPrecip24h   = 8
	colInflow      = 9
	colOutflow     = 10
	colPercentUtil = 12
)

// ParseLakeReport extracts per-project readings from the tabular lake report,
// preserving upstream row order. Rows shorter than minReportCells are skipped,
// as are rows with no usable measurement at all: silently dropping an
// ambiguous row beats publishing a wrong reading.
func ParseLakeReport(doc *goquery.Document) ([]domain.ProjectReading, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoTable
	}

	var readings []domain.ProjectReading
	lastBasin := ""

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := row.Find("td, th")
		if cells.Length() < minReportCells {
			return
		}

		cols := make([]string, cells.Length())
		cells.Each(func(j int, cell *goquery.Selection) {
			cols[j] = strings.TrimSpace(cell.Text())
		})

		// The basin name is printed only on the first row of each group;
		// later rows inherit the most recent non-empty one.
		basin := cols[colBasin]
		if basin == "" {
			basin = lastBasin
		} else {
			lastBasin = basin
		}

		reading := domain.ProjectReading{
			Basin:       basin,
			Project:     cols[colProject],
			TodayPool:   domain.ParseNumber(cols[colTodayPool]),
			Deviation:   domain.ParseNumber(cols[colDeviation]),
			Change24h:   domain.ParseNumber(cols[colChange24h]),
			Precip24h:   domain.ParseNumber(cols[colPrecip24h]),
			Inflow:      domain.ParseNumber(cols[colInflow]),
			Outflow:     domain.ParseNumber(cols[colOutflow]),
			PercentUtil: domain.ParseNumber(cols[colPercentUtil]),
		}
		if !reading.HasData() {
			return
		}
		readings = append(readings, reading)
	})

	return readings, nil
}
