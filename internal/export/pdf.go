package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the proposal and returns the raw PDF bytes.
func GeneratePDF(p Proposal) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addProposalHeader(m, p)
	addLineTableHeader(m)
	for _, l := range p.Lines {
		addLineRow(m, l)
	}
	addBreakdown(m, p)
	addTermsFooter(m, p)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating proposal PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addProposalHeader(m core.Maroto, p Proposal) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(p.CompanyName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	contact := p.CompanyAddress
	if p.CompanyPhone != "" {
		contact += "  |  " + p.CompanyPhone
	}
	if p.CompanyEmail != "" {
		contact += "  |  " + p.CompanyEmail
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(contact, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("Proposal: "+p.ProjectName, props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	client := p.ClientName
	if p.ClientCompany != "" {
		client += ", " + p.ClientCompany
	}
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(
				text.New("Prepared for: "+client, props.Text{
					Size:  9,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("%s  |  %s", p.ProjectNumber, p.Date), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

func addLineTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)
}

func addLineRow(m core.Maroto, l ProposalLine) {
	baseText := props.Text{Size: 8, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	desc := l.Description
	if l.Category != "" {
		desc = l.Description + "  (" + l.Category + ")"
	}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(l.Index, baseText)),
			col.New(5).Add(text.New(desc, leftText)),
			col.New(1).Add(text.New(formatQty(l.Qty), rightText)),
			col.New(1).Add(text.New(l.Unit, baseText)),
			col.New(2).Add(text.New(FormatUSD(l.UnitPrice), rightText)),
			col.New(2).Add(text.New(FormatUSD(l.LineTotal), rightText)),
		),
	)
}

func addBreakdown(m core.Maroto, p Proposal) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	labelStyle := props.Text{Size: 9, Align: align.Right}
	valueStyle := props.Text{Size: 9, Align: align.Right}

	for _, l := range p.Breakdown {
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(text.New(l.Label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(FormatUSD(l.Amount), valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	totalStyle := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(9).Add(
			col.New(8).Add(text.New("Total", totalStyle)).WithStyle(summaryCell),
			col.New(4).Add(text.New(FormatUSD(p.GrandTotal), totalStyle)).WithStyle(summaryCell),
		),
	)
}

func addTermsFooter(m core.Maroto, p Proposal) {
	if p.Terms == "" {
		return
	}
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New("Terms", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
	)
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(p.Terms, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
}
