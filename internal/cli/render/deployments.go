package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Color styles for table format
var (
	chainBg         = color.BgCyan
	chainHeader     = color.New(chainBg, color.FgBlack)
	chainHeaderBold = color.New(chainBg, color.FgBlack, color.Bold)
	contractStyle   = color.New(color.FgGreen, color.Bold)
	labelStyle      = color.New(color.FgCyan)
	addressStyle    = color.New(color.FgWhite)
	timestampStyle  = color.New(color.Faint)
	runStyle        = color.New(color.Faint)
	liveStyle       = color.New(color.FgGreen)
	missingStyle    = color.New(color.FgRed)
	unknownStyle    = color.New(color.FgYellow)
)

type TableData [][]string

// DeploymentsRenderer renders recorded deployments grouped by chain
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// Render implements Renderer
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byChain := make(map[uint64][]*models.Deployment)
	for _, dep := range result.Deployments {
		byChain[dep.ChainID] = append(byChain[dep.ChainID], dep)
	}

	chainIDs := make([]uint64, 0, len(byChain))
	for chainID := range byChain {
		chainIDs = append(chainIDs, chainID)
	}
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	// Same column widths for every chain so the tables line up
	tables := make(map[uint64]TableData, len(chainIDs))
	all := make([]TableData, 0, len(chainIDs))
	for _, chainID := range chainIDs {
		tables[chainID] = r.buildDeploymentTable(byChain[chainID], result.Statuses)
		all = append(all, tables[chainID])
	}
	widths := calculateTableColumnWidths(all)

	for idx, chainID := range chainIDs {
		isLast := idx == len(chainIDs)-1
		treePrefix := "├─"
		continuationPrefix := "│ "
		if isLast {
			treePrefix = "└─"
			continuationPrefix = "  "
		}

		chainLabel := fmt.Sprintf("%-8s", "chain:")
		chainValue := fmt.Sprintf("%-20s", fmt.Sprintf("%d", chainID))
		fmt.Fprintf(r.out, "%s%s%s\n", treePrefix, chainHeader.Sprintf(" ⛓ %s ", chainLabel), chainHeaderBold.Sprint(chainValue))
		fmt.Fprintln(r.out, continuationPrefix)
		fmt.Fprint(r.out, renderTableWithWidths(tables[chainID], widths, continuationPrefix))
		fmt.Fprintln(r.out)
		if !isLast {
			fmt.Fprintln(r.out, continuationPrefix)
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total deployments: %d across %d run(s)\n", result.Summary.Total, result.Summary.Runs)
	return nil
}

// buildDeploymentTable keeps the incoming order, which is newest first
func (r *DeploymentsRenderer) buildDeploymentTable(deployments []*models.Deployment, statuses map[string]models.DeploymentStatus) TableData {
	tableData := make(TableData, 0, len(deployments))

	for _, dep := range deployments {
		contractCell := contractStyle.Sprint(dep.ContractName)
		if dep.Label != "" {
			contractCell += " " + labelStyle.Sprintf("(%s)", dep.Label)
		}

		row := []string{
			contractCell,
			addressStyle.Sprint(dep.Address),
		}
		if statuses != nil {
			row = append(row, formatStatus(statuses[dep.ID]))
		}
		row = append(row,
			runStyle.Sprint(shortRunID(dep.RunID)),
			timestampStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
		)

		tableData = append(tableData, row)
	}

	return tableData
}

func formatStatus(status models.DeploymentStatus) string {
	switch status {
	case models.StatusLive:
		return liveStyle.Sprint("✓ live")
	case models.StatusMissing:
		return missingStyle.Sprint("✗ missing")
	default:
		return unknownStyle.Sprint("? other chain")
	}
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// renderTableWithWidths renders a table with specific column widths
func renderTableWithWidths(tableData TableData, columnWidths []int, continuationPrefix string) string {
	if len(tableData) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, len(columnWidths))
	for i, width := range columnWidths {
		if i == 0 {
			width += len([]rune(continuationPrefix))
		}
		colConfigs[i] = table.ColumnConfig{
			Number:   i + 1,
			Align:    text.AlignLeft,
			WidthMin: width,
			WidthMax: width,
		}
	}
	t.SetColumnConfigs(colConfigs)

	for _, row := range tableData {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				tableRow[i] = continuationPrefix + cell
			} else {
				tableRow[i] = cell
			}
		}
		t.AppendRow(tableRow)
	}

	return t.Render()
}

// calculateTableColumnWidths calculates column widths for multiple tables
func calculateTableColumnWidths(tables []TableData) []int {
	maxCols := 0
	for _, td := range tables {
		for _, row := range td {
			if len(row) > maxCols {
				maxCols = len(row)
			}
		}
	}

	widths := make([]int, maxCols)
	for _, td := range tables {
		for _, row := range td {
			for colIdx, cell := range row {
				if w := text.StringWidthWithoutEscSequences(cell); w > widths[colIdx] {
					widths[colIdx] = w
				}
			}
		}
	}

	return widths
}

var _ Renderer[*usecase.DeploymentListResult] = (*DeploymentsRenderer)(nil)
