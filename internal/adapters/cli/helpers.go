package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/config"
)

// resolvePlayerID resolves the player from flags or defaults
// Priority: --player-id flag > user config default
func resolvePlayerID() (int, error) {
	if playerID > 0 {
		return playerID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return 0, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return 0, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultPlayerID != nil {
		return *userCfg.DefaultPlayerID, nil
	}

	return 0, fmt.Errorf("no player specified: use --player-id, or set a default with 'fort config set-player'")
}

// validateInput checks a flag struct against its validate tags
func validateInput(input interface{}) error {
	return config.NewValidator().Validate(input)
}

// normalizeEnum upper-cases a flag value and maps dashes to underscores
func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}

// parseBuildID parses a positional build id argument
func parseBuildID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid build id: %s", arg)
	}
	return id, nil
}

// formatRemaining renders remaining seconds as a duration, "-" when idle
func formatRemaining(build *types.BuildDTO) string {
	if build.BuildStatus == "NEUTRAL" {
		return "-"
	}
	if build.RemainTime == 0 {
		return "ready"
	}
	return (time.Duration(build.RemainTime) * time.Second).String()
}

// printBuild writes a single build summary
func printBuild(w io.Writer, build *types.BuildDTO) {
	fmt.Fprintf(w, "  Build ID:   %d\n", build.BuildID)
	fmt.Fprintf(w, "  Plant:      %s (%d)\n", build.PlantName, build.PlantID)
	fmt.Fprintf(w, "  Level:      %d\n", build.Level)
	fmt.Fprintf(w, "  Detail ID:  %d\n", build.FortPlantDetailID)
	fmt.Fprintf(w, "  Position:   (%d, %d)\n", build.PositionX, build.PositionZ)
	fmt.Fprintf(w, "  Status:     %s\n", build.BuildStatus)
	if build.BuildStatus != "NEUTRAL" {
		fmt.Fprintf(w, "  Ends:       %s\n", time.Unix(build.BuildEndDate, 0).UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "  Remaining:  %s\n", formatRemaining(build))
	}
}

// printCarpenters writes the carpenter pool line
func printCarpenters(w io.Writer, carpenter types.CarpenterDTO) {
	fmt.Fprintf(w, "Carpenters: %d/%d working\n", carpenter.WorkingCarpenterNum, carpenter.CarpenterNum)
}

// printBuildTable writes builds as an aligned table
func printBuildTable(out io.Writer, builds []*types.BuildDTO) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPlant\tLevel\tPosition\tStatus\tRemaining\tNew")
	fmt.Fprintln(w, "──\t─────\t─────\t────────\t──────\t─────────\t───")

	for _, b := range builds {
		isNew := ""
		if b.IsNew {
			isNew = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t(%d,%d)\t%s\t%s\t%s\n",
			b.BuildID,
			b.PlantName,
			b.Level,
			b.PositionX,
			b.PositionZ,
			b.BuildStatus,
			formatRemaining(b),
			isNew,
		)
	}

	w.Flush()
}

// printBalances writes a name → amount map in name order
func printBalances(out io.Writer, title string, balances map[string]int) {
	fmt.Fprintln(out, title)
	if len(balances) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}

	names := make([]string, 0, len(balances))
	for name := range balances {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%d\n", name, balances[name])
	}
	w.Flush()
}
