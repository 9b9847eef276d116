package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/gmcclure382/DragaliaAPI/test/bdd/steps"
	"github.com/gmcclure382/DragaliaAPI/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/fort"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeFortScenario(sc)
}

func TestMain(m *testing.M) {
	// One in-memory database for the whole suite; scenarios truncate it in their Before hook
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	helpers.CloseSharedTestDB()
	os.Exit(code)
}
