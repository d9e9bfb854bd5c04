package cli

import (
	"fmt"

	"github.com/canaleta14-ai/gmao/internal/cli/formatter"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/spf13/cobra"
)

func newTechCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tech",
		Short: "Manage technicians",
	}

	cmd.AddCommand(
		newTechAddCmd(app),
		newTechListCmd(app),
	)

	return cmd
}

func newTechAddCmd(app *App) *cobra.Command {
	var name, email, role string
	var inactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a technician",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Technician{
				Name:   name,
				Email:  email,
				Active: !inactive,
			}
			if role != "" {
				r, err := domain.ParseTechnicianRole(role)
				if err != nil {
					return err
				}
				t.Role = r
			}
			if err := app.Technicians.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s (%s)\n",
				formatter.StyleGreen.Render("Added technician"), t.ID, t.Name, t.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "technician name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&role, "role", "", "technician, supervisor, administrator or viewer")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "register as inactive")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTechListCmd(app *App) *cobra.Command {
	var all, roster bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List technicians",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if roster {
				loads, err := app.Technicians.Roster(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoster(loads))
				return nil
			}

			techs, err := app.Technicians.List(ctx, all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTechnicians(techs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive technicians")
	cmd.Flags().BoolVar(&roster, "roster", false, "show eligible technicians in assignment order with their open orders")

	return cmd
}

func newAssetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage assets",
	}

	cmd.AddCommand(
		newAssetAddCmd(app),
		newAssetListCmd(app),
	)

	return cmd
}

func newAssetAddCmd(app *App) *cobra.Command {
	var code, name, location string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Asset{Code: code, Name: name, Location: location}
			if err := app.Assets.Create(cmd.Context(), a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.StyleGreen.Render("Added asset"), formatter.Bold(a.Code), a.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "asset code, stored upper-case")
	cmd.Flags().StringVar(&name, "name", "", "asset name")
	cmd.Flags().StringVar(&location, "location", "", "where the asset is installed")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAssetListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, err := app.Assets.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssets(assets))
			return nil
		},
	}
}
