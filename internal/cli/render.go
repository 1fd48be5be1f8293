package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/splitstuff/splitstuff/internal/upi"
)

var (
	ColorBorder = lipgloss.Color("#282726")
	ColorText   = lipgloss.Color("#FFFCF0")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorGreen  = lipgloss.Color("#879A39")
	ColorRed    = lipgloss.Color("#D14D41")
	ColorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1)
	creditStyle = cellStyle.Foreground(ColorGreen)
	debitStyle  = cellStyle.Foreground(ColorRed)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

func (p *Plan) name(id string) string {
	if m, ok := p.Input.Member(id); ok && m.Name != "" {
		return m.Name
	}
	return id
}

func (p *Plan) currency() string {
	if p.Input.Currency != "" {
		return p.Input.Currency
	}
	return upi.DefaultCurrency
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(headers...)
}

// RenderBalances renders one row per member with the components of the balance.
func RenderBalances(p *Plan) string {
	t := newTable("Member", "Paid", "Share", "Settled out", "Settled in", "Net")
	for _, s := range p.Summaries {
		t.Row(
			p.name(s.MemberID),
			upi.FormatAmount(s.TotalPaid),
			upi.FormatAmount(s.TotalShare),
			upi.FormatAmount(s.SettledOut),
			upi.FormatAmount(s.SettledIn),
			upi.FormatAmount(s.Net),
		)
	}
	rows := p.Summaries
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 5 && row >= 0 && row < len(rows) {
			switch {
			case rows[row].Net > 0:
				return creditStyle
			case rows[row].Net < 0:
				return debitStyle
			}
		}
		return cellStyle
	})
	return titleStyle.Render("Balances ("+p.currency()+")") + "\n" + t.Render()
}

// RenderTransfers renders the settle-up plan. links maps a transfer index to
// its payment link.
func RenderTransfers(p *Plan, links map[int]string) string {
	if len(p.Transfers) == 0 {
		return titleStyle.Render("Settle up") + "\n" + mutedStyle.Render("Everyone is settled up.")
	}

	t := newTable("From", "To", "Amount", "Pay link").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, tr := range p.Transfers {
		t.Row(p.name(tr.From), p.name(tr.To), upi.FormatAmount(tr.Amount), links[i])
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settle up"))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d transfer(s) for %d member(s)", len(p.Transfers), len(p.Balances))))
	return b.String()
}

// PayLinks builds a UPI link for every transfer whose receiver has a UPI ID.
func PayLinks(p *Plan) map[int]string {
	links := make(map[int]string)
	for i, tr := range p.Transfers {
		to, _ := p.Input.Member(tr.To)
		if to.UPIID == "" {
			continue
		}
		link, err := upi.Link(upi.Params{
			PayeeVPA:  to.UPIID,
			PayeeName: p.name(tr.To),
			Amount:    tr.Amount,
			Note:      "SplitStuff settle-up",
			Currency:  p.currency(),
		})
		if err != nil {
			continue
		}
		links[i] = link
	}
	return links
}
