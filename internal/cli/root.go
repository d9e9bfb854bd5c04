package cli

import (
	"time"

	"github.com/canaleta14-ai/gmao/internal/config"
	"github.com/canaleta14-ai/gmao/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and runtime settings used by CLI commands.
type App struct {
	Generation  service.GenerationService
	Orders      service.WorkOrderService
	Plans       service.PlanService
	Technicians service.TechnicianService
	Assets      service.AssetService
	Import      service.ImportService

	Config *config.Config
	Logger *zap.Logger

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title, description string) (bool, error)
	// Now is the CLI clock, used for due labels. Nil means time.Now.
	Now func() time.Time
}

// NewRootCmd creates the top-level "gmao" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gmao",
		Short:         "Preventive maintenance planner and work order generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newPlanCmd(app),
		newOrderCmd(app),
		newTechCmd(app),
		newAssetCmd(app),
		newSeedCmd(app),
		newServeCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
