package tui

import (
	"fmt"
	"strings"

	"github.com/gabapcia/transferscope/internal/dashboard"
	"github.com/gabapcia/transferscope/internal/transfer"

	"github.com/charmbracelet/lipgloss"
)

const (
	histogramWidth = 30
	minTableHeight = 5
	// chromeHeight is the number of lines around the table: title, tabs,
	// borders, header, footer and the details panel.
	chromeHeight = 22

	scrollbarThumb = "█"
	scrollbarTrack = "░"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	scrollbarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

func (m *Model) View() string {
	var body, hints string

	switch m.state.Screen {
	case dashboard.ScreenStartup:
		body, hints = m.viewStartup(), "c new query • q quit"
	case dashboard.ScreenQueryBuilder:
		body = m.viewQueryBuilder()
		hints = "e edit • y run query • esc back • q quit"
		if m.state.Editing {
			hints = "↑/↓ field • type to edit • enter toggle/next • esc done"
		}
	case dashboard.ScreenLoading:
		body, hints = m.viewLoading(), "q/esc cancel"
	case dashboard.ScreenMain:
		body = m.viewMain()
		hints = "tab/shift+tab switch • ↑/↓ select • c new query • j save • q quit"
		if m.state.SavePrompt {
			hints = "save transfers to JSON? y yes • n no"
		}
	case dashboard.ScreenExiting:
		body, hints = m.viewExiting(), "y quit • n stay"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("transferscope") + "\n\n")
	b.WriteString(body + "\n")
	if m.state.Err != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+m.state.Err.Error()))
	}
	if m.state.Notice != "" {
		b.WriteString("\n" + noticeStyle.Render(m.state.Notice))
	}
	b.WriteString("\n" + mutedStyle.Render(hints) + "\n")

	return b.String()
}

func (m *Model) viewStartup() string {
	return strings.Join([]string{
		"Browse the native, ERC20 and ERC721 transfers of a wallet.",
		"",
		"Press c to build a query.",
	}, "\n")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m *Model) viewQueryBuilder() string {
	fields := []struct {
		label string
		value string
	}{
		dashboard.FieldAddress:    {"Wallet address", m.query.Address},
		dashboard.FieldNative:     {"Regular transfers", checkbox(m.query.WantNative)},
		dashboard.FieldERC20:      {"ERC20 transfers", checkbox(m.query.WantERC20)},
		dashboard.FieldERC721:     {"ERC721 transfers", checkbox(m.query.WantERC721)},
		dashboard.FieldChain:      {"Chain", fmt.Sprintf("%s (%s)", m.query.Chain.Name(), m.query.Chain.URL())},
		dashboard.FieldStartBlock: {"Start block", m.query.StartBlock},
	}

	lines := make([]string, 0, len(fields)+1)
	lines = append(lines, headerStyle.Render("Query"))
	for i, f := range fields {
		cursor := "  "
		line := pad(f.label, 18) + " " + f.value
		if m.state.Editing && i == m.state.EditField {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		lines = append(lines, cursor+line)
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewLoading() string {
	p := m.progress

	lines := []string{
		fmt.Sprintf("Loading transfers of %s on %s from block %s", m.query.Address, m.query.Chain.Name(), m.query.StartBlock),
		mutedStyle.Render(kindList(m.query.Kinds())),
		"",
		fmt.Sprintf("batches      %d", p.Batches),
	}
	if p.ArchiveHeight > 0 {
		pct := min(float64(p.NextBlock)/float64(p.ArchiveHeight)*100, 100)
		lines = append(lines, fmt.Sprintf("block        %d / %d (%.1f%%)", p.NextBlock, p.ArchiveHeight, pct))
	}
	lines = append(lines,
		fmt.Sprintf("regular      %d", p.Stats.Native),
		fmt.Sprintf("erc20        %d", p.Stats.ERC20),
		fmt.Sprintf("erc721       %d", p.Stats.ERC721),
		fmt.Sprintf("discarded    %d", p.Stats.Discarded),
	)

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func kindList(kinds []transfer.Kind) string {
	if len(kinds) == 0 {
		return "no transfer kinds selected"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

func (m *Model) viewExiting() string {
	return panelStyle.Render("Quit transferscope? (y/n)")
}

func (m *Model) tableHeight() int {
	if m.height == 0 {
		return 10
	}
	return max(m.height-chromeHeight, minTableHeight)
}

func (m *Model) viewMain() string {
	tabs := make([]string, 0, transfer.KindCount)
	for _, k := range transfer.Kinds {
		title := fmt.Sprintf("%s (%d)", k, m.store.Len(k))
		if k == m.state.ActiveTab {
			tabs = append(tabs, activeTabStyle.Render(title))
			continue
		}
		tabs = append(tabs, tabStyle.Render(title))
	}

	header := mutedStyle.Render(fmt.Sprintf("%s on %s from block %s",
		m.loaded.Address, m.loaded.Chain.Name(), m.loaded.StartBlock))

	active := m.state.ActiveTable()
	selected, ok := active.Selected()

	headers, rows, details := m.activeRows(selected, ok)
	t := table{
		headers: headers,
		rows:    rows,
		state:   *active,
		height:  m.tableHeight(),
	}

	sections := []string{
		header,
		strings.Join(tabs, "  "),
		t.render(),
		renderDetails(details),
	}
	if m.state.ActiveTab == transfer.KindNative {
		sections = append(sections, renderHistogram(transfer.ValueHistogram(m.store.Native())))
	}

	return strings.Join(sections, "\n\n")
}

// field is one labelled value of the details panel.
type field struct {
	label string
	value string
}

func (m *Model) activeRows(selected int, hasSelection bool) ([]string, [][]string, []field) {
	var details []field

	switch m.state.ActiveTab {
	case transfer.KindERC20:
		records := m.store.ERC20()
		rows := make([][]string, len(records))
		for i, r := range records {
			rows[i] = []string{r.Block, shortHex(r.Hash), shortHex(r.Contract), shortHex(r.From), shortHex(r.To), r.Amount}
		}
		if hasSelection && selected < len(records) {
			r := records[selected]
			details = []field{
				{"Hash", r.Hash}, {"Block", r.Block}, {"Contract", r.Contract},
				{"From", r.From}, {"To", r.To}, {"Amount", r.Amount},
			}
		}
		return []string{"Block", "Hash", "Contract", "From", "To", "Amount"}, rows, details

	case transfer.KindERC721:
		records := m.store.ERC721()
		rows := make([][]string, len(records))
		for i, r := range records {
			rows[i] = []string{r.Block, shortHex(r.Hash), shortHex(r.Contract), shortHex(r.From), shortHex(r.To), r.TokenID}
		}
		if hasSelection && selected < len(records) {
			r := records[selected]
			details = []field{
				{"Hash", r.Hash}, {"Block", r.Block}, {"Contract", r.Contract},
				{"From", r.From}, {"To", r.To}, {"Token ID", r.TokenID},
			}
		}
		return []string{"Block", "Hash", "Contract", "From", "To", "Token ID"}, rows, details
	}

	records := m.store.Native()
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Block, shortHex(r.Hash), shortHex(r.From), shortHex(r.To), r.Value}
	}
	if hasSelection && selected < len(records) {
		r := records[selected]
		details = []field{
			{"Hash", r.Hash}, {"Block", r.Block}, {"Block hash", r.BlockHash}, {"Nonce", r.Nonce},
			{"From", r.From}, {"To", r.To}, {"Value (ETH)", r.Value}, {"Gas used", r.GasUsed},
		}
	}
	return []string{"Block", "Hash", "From", "To", "Value (ETH)"}, rows, details
}

func renderDetails(details []field) string {
	if len(details) == 0 {
		return panelStyle.Render(mutedStyle.Render("select a row with ↑/↓ to see its details"))
	}

	lines := make([]string, len(details))
	for i, f := range details {
		lines[i] = headerStyle.Render(pad(f.label, 12)) + " " + f.value
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderHistogram(buckets []transfer.Bucket) string {
	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}

	lines := make([]string, 0, len(buckets)+1)
	lines = append(lines, headerStyle.Render("Value distribution (ETH)"))
	for _, b := range buckets {
		width := 0
		if peak > 0 {
			width = b.Count * histogramWidth / peak
		}
		if b.Count > 0 {
			width = max(width, 1)
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		lines = append(lines, fmt.Sprintf("%s %s %d", pad(b.Label, 8), pad(bar, histogramWidth), b.Count))
	}
	return strings.Join(lines, "\n")
}
