package usace

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lakeReportFixture = `<html><body>
<h1>Lake Report</h1>
<table>
<tr><th>Basin</th><th>Project</th><th>Streambed</th><th>Top Flood</th><th>Winter Pool</th>
<th>Today Pool</th><th>Deviation</th><th>24hr Change</th><th>24hr Precip</th>
<th>Inflow</th><th>Outflow</th><th>Storage</th><th>% Util</th></tr>
<tr><td>Green</td><td>Barren River</td><td>450</td><td>590</td><td>525</td>
<td>552.86</td><td>1.86</td><td>-0.04</td><td>0.00</td>
<td>123</td><td>250</td><td>n/a</td><td>31.5%</td></tr>
<tr><td></td><td>Nolin River</td><td>470</td><td>560</td><td>515</td>
<td>N/A</td><td></td><td>0.12</td><td>0.25</td>
<td>1,204</td><td>980</td><td>n/a</td><td>18.2%</td></tr>
<tr><td>Notes</td><td>footer row</td><td>only three cells</td></tr>
<tr><td>Cumberland</td><td>Lake Cumberland</td><td>560</td><td>760</td><td>690</td>
<td></td><td>2.10</td><td></td><td></td>
<td></td><td>8,900</td><td>n/a</td><td></td></tr>
<tr><td></td><td>Decommissioned Gauge</td><td></td><td></td><td></td>
<td></td><td></td><td></td><td></td>
<td></td><td></td><td></td><td></td></tr>
</table>
</body></html>`

func docFrom(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestParseLakeReport(t *testing.T) {
	readings, err := ParseLakeReport(docFrom(t, lakeReportFixture))
	require.NoError(t, err)

	// The 3-cell footer row and the all-empty gauge row are dropped; order of
	// the surviving rows matches the report.
	require.Len(t, readings, 3)
	assert.Equal(t, "Barren River", readings[0].Project)
	assert.Equal(t, "Nolin River", readings[1].Project)
	assert.Equal(t, "Lake Cumberland", readings[2].Project)

	t.Run("positional columns", func(t *testing.T) {
		barren := readings[0]
		assert.Equal(t, "Green", barren.Basin)
		require.NotNil(t, barren.TodayPool)
		assert.InDelta(t, 552.86, *barren.TodayPool, 1e-9)
		require.NotNil(t, barren.Deviation)
		assert.InDelta(t, 1.86, *barren.Deviation, 1e-9)
		require.NotNil(t, barren.Change24h)
		assert.InDelta(t, -0.04, *barren.Change24h, 1e-9)
		require.NotNil(t, barren.Precip24h)
		assert.InDelta(t, 0.00, *barren.Precip24h, 1e-9)
		require.NotNil(t, barren.Inflow)
		assert.InDelta(t, 123, *barren.Inflow, 1e-9)
		require.NotNil(t, barren.Outflow)
		assert.InDelta(t, 250, *barren.Outflow, 1e-9)
		require.NotNil(t, barren.PercentUtil)
		assert.InDelta(t, 31.5, *barren.PercentUtil, 1e-9)
	})

	t.Run("basin fill-down", func(t *testing.T) {
		assert.Equal(t, "Green", readings[1].Basin)
		assert.Equal(t, "Cumberland", readings[2].Basin)
	})

	t.Run("bad cells become absent without dropping the row", func(t *testing.T) {
		nolin := readings[1]
		assert.Nil(t, nolin.TodayPool)
		assert.Nil(t, nolin.Deviation)
		require.NotNil(t, nolin.Inflow)
		assert.InDelta(t, 1204, *nolin.Inflow, 1e-9)
	})

	t.Run("partially empty row survives", func(t *testing.T) {
		cumberland := readings[2]
		assert.Nil(t, cumberland.TodayPool)
		assert.Nil(t, cumberland.Inflow)
		require.NotNil(t, cumberland.Outflow)
		assert.InDelta(t, 8900, *cumberland.Outflow, 1e-9)
	})
}

func TestParseLakeReport_NoTable(t *testing.T) {
	_, err := ParseLakeReport(docFrom(t, `<html><body><p>maintenance page</p></body></html>`))
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestParseLakeReport_EmptyTable(t *testing.T) {
	readings, err := ParseLakeReport(docFrom(t, `<html><body><table><tr><th>Basin</th></tr></table></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, readings)
}
