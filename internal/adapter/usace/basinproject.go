package usace

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/anchorpoint/lakewatch/internal/domain"
)

// The basin project page always describes the Wolf Creek dam project.
const (
	cumberlandBasin   = "Cumberland"
	cumberlandProject = "Lake Cumberland"
)

// Label spellings vary between page revisions, so each field tries a few
// alternatives, most specific first.
var (
	poolLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Pool\s*Elevation`),
		regexp.MustCompile(`(?i)Lake\s*Elevation`),
		regexp.MustCompile(`(?i)Elevation`),
	}
	inflowLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bInflow\b`),
		regexp.MustCompile(`(?i)\bIn\s*Flow\b`),
	}
	outflowLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bOutflow\b`),
		regexp.MustCompile(`(?i)\bOut\s*Flow\b`),
		regexp.MustCompile(`(?i)\bTotal\s*Flow\b`),
		regexp.MustCompile(`(?i)\bRelease\b`),
	}
	poolRowLabel = regexp.MustCompile(`(?i)Pool\s*Elevation`)
)

// ParseBasinProject extracts the Lake Cumberland reading from the basin
// project page. Pool elevation is located by label proximity in the flattened
// page text, falling back to a scan of table rows; flows go through the same
// proximity extraction and then the unit policy. Returns nil when pool,
// inflow, and outflow are all absent — an uninterpretable page yields no
// record rather than an empty one.
func (c *Client) ParseBasinProject(doc *goquery.Document) *domain.ProjectReading {
	text := flattenText(doc.Selection)

	pool := firstNear(text, poolLabels)
	if pool == nil {
		pool = poolFromTableRows(doc)
	}
	inflow := c.correctFlow("inflow", firstNear(text, inflowLabels))
	outflow := c.correctFlow("outflow", firstNear(text, outflowLabels))

	if pool == nil && inflow == nil && outflow == nil {
		return nil
	}
	return &domain.ProjectReading{
		Basin:     cumberlandBasin,
		Project:   cumberlandProject,
		TodayPool: pool,
		Inflow:    inflow,
		Outflow:   outflow,
	}
}

// firstNear tries each label alternative in order and returns the first
// proximity hit.
func firstNear(text string, labels []*regexp.Regexp) *float64 {
	for _, label := range labels {
		if v := domain.FirstNumberNear(text, label, domain.DefaultProximityWindow); v != nil {
			return v
		}
	}
	return nil
}

// poolFromTableRows scans every table row's flattened text for the pool
// elevation label and takes the first number on a matching row. This catches
// layouts where the value is printed before the label within the row.
func poolFromTableRows(doc *goquery.Document) *float64 {
	var pool *float64
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		rowText := flattenText(row)
		if !poolRowLabel.MatchString(rowText) {
			return true
		}
		pool = domain.FirstNumber(rowText)
		return pool == nil
	})
	return pool
}

// correctFlow applies the unit policy to a flow value. Every correction is
// logged and counted so consumers can audit heuristic rescaling.
func (c *Client) correctFlow(field string, v *float64) *float64 {
	if v == nil || c.cfg.FlowPolicy == nil {
		return v
	}
	corrected, applied := c.cfg.FlowPolicy(*v)
	if applied {
		c.logger.Warn("flow value rescaled by unit heuristic",
			"field", field, "raw", *v, "corrected", corrected)
		c.metrics.FlowUnitCorrections.WithLabelValues(field).Inc()
	}
	return &corrected
}

// flattenText extracts a selection's text with a separator between text
// nodes, then collapses whitespace. goquery's Text concatenates adjacent
// nodes directly, which can glue a value to its neighbor when the markup has
// no whitespace between tags.
func flattenText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return domain.NormalizeText(b.String())
}
