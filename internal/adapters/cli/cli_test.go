package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
)

// setupCLIEnv points the CLI at a fresh SQLite file and an isolated home directory
func setupCLIEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DF_DATABASE_TYPE", "sqlite")
	t.Setenv("DF_DATABASE_PATH", filepath.Join(dir, "fort.db"))
	t.Setenv("DF_METRICS_ENABLED", "false")
	t.Setenv("DF_LOGGING_LEVEL", "error")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_BuildLevelupAndSkip(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "wallet", "grant", "--player-id", "1", "--currency", "coin", "--amount", "5000")
	require.NoError(t, err)

	out, err := runCLI(t, "build", "--player-id", "1", "--plant", "smithy", "--x", "3", "--z", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Facility placed")
	assert.Contains(t, out, "SMITHY")
	assert.Contains(t, out, "Carpenters: 0/2 working")

	out, err = runCLI(t, "list", "--player-id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "SMITHY")
	assert.Contains(t, out, "NEUTRAL")

	out, err = runCLI(t, "material", "grant", "--player-id", "1", "--material", "lightmetal-ingot", "--quantity", "2")
	require.NoError(t, err)
	assert.Regexp(t, `LIGHTMETAL_INGOT\s+2`, out)

	out, err = runCLI(t, "levelup", "1", "--player-id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Levelup started")
	assert.Contains(t, out, "Carpenters: 1/2 working")

	_, err = runCLI(t, "wallet", "grant", "--player-id", "1", "--currency", "wyrmite", "--amount", "10")
	require.NoError(t, err)

	// 1800s remaining at 12 minutes per unit rounds up to 3
	out, err = runCLI(t, "at-once", "1", "--player-id", "1", "--payment", "wyrmite")
	require.NoError(t, err)
	assert.Contains(t, out, "Construction completed for 3 WYRMITE")
	assert.Contains(t, out, "Level:      1")
	assert.Contains(t, out, "Carpenters: 0/2 working")

	out, err = runCLI(t, "wallet", "show", "--player-id", "1")
	require.NoError(t, err)
	assert.Regexp(t, `WYRMITE\s+7`, out)
	assert.Regexp(t, `COIN\s+3000`, out)
}

func TestCLI_DomainErrorsCarryResultCode(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "build", "--player-id", "1", "--plant", "smithy")
	require.Error(t, err)
	assert.Contains(t, formatError(err), "SHOP_INSUFFICIENT_FUNDS")

	_, err = runCLI(t, "end", "99", "--player-id", "1")
	require.Error(t, err)
	assert.Contains(t, formatError(err), "COMMON_DATA_NOT_FOUND")
}

func TestCLI_ValidatesFlags(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "carpenter", "add", "--player-id", "1", "--payment", "coin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PaymentType")

	_, err = runCLI(t, "wallet", "grant", "--player-id", "1", "--currency", "coin", "--amount", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amount")

	_, err = runCLI(t, "levelup", "abc", "--player-id", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid build id")
}

func TestCLI_RequiresPlayer(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no player specified")
}

func TestCLI_DefaultPlayerFromUserConfig(t *testing.T) {
	setupCLIEnv(t)

	out, err := runCLI(t, "config", "set-player", "--player-id", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Default player set successfully")

	out, err = runCLI(t, "detail")
	require.NoError(t, err)
	assert.Contains(t, out, "player 7")
	assert.Contains(t, out, "Carpenters: 0/2 working")
	assert.Contains(t, out, "Next carpenter: 250")
}

func TestCLI_SetSkipPayment(t *testing.T) {
	setupCLIEnv(t)

	out, err := runCLI(t, "config", "set-skip-payment", "halidom-hustle-hammer")
	require.NoError(t, err)
	assert.Contains(t, out, "HALIDOM_HUSTLE_HAMMER")
	assert.Equal(t, "HALIDOM_HUSTLE_HAMMER", defaultSkipPayment())

	_, err = runCLI(t, "config", "set-skip-payment", "coin")
	assert.Error(t, err)
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://fort:xxxxx@db:5432/dragalia", maskPassword("postgres://fort:secret@db:5432/dragalia"))
	assert.Equal(t, "postgres://db:5432/dragalia", maskPassword("postgres://db:5432/dragalia"))
}

func TestNormalizeEnum(t *testing.T) {
	assert.Equal(t, "HALIDOM_HUSTLE_HAMMER", normalizeEnum(" halidom-hustle-hammer "))
	assert.Equal(t, "WYRMITE", normalizeEnum("wyrmite"))
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "-", formatRemaining(&types.BuildDTO{BuildStatus: "NEUTRAL"}))
	assert.Equal(t, "ready", formatRemaining(&types.BuildDTO{BuildStatus: "LEVEL_UP"}))
	assert.Equal(t, "1h0m0s", formatRemaining(&types.BuildDTO{BuildStatus: "LEVEL_UP", RemainTime: 3600}))
}

func TestFormatError(t *testing.T) {
	err := fmt.Errorf("failed to add carpenter: %w", fort.NewCarpenterLimitError(5))
	assert.Contains(t, formatError(err), "Error [FORT_EXTEND_CARPENTER_LIMIT]")
	assert.Equal(t, "Error: boom", formatError(fmt.Errorf("boom")))
}
