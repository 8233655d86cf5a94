package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nodefit/internal/app"
	"nodefit/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect or remove profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <profile-id>",
	Short: "Show a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("profile id", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd, func(_ *config.Config, _ *gorm.DB, s *app.Services, _ *zap.Logger) error {
			p, err := s.Profiles.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID\t%d\n", p.ID)
			fmt.Fprintf(out, "USER\t%d\n", p.UserID)
			fmt.Fprintf(out, "NAME\t%s\n", p.Name)
			fmt.Fprintf(out, "GOAL\t%s\n", p.Goal)
			fmt.Fprintf(out, "CREATED\t%s\n", p.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var profileDeleteYes bool

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <profile-id>",
	Short: "Delete a profile with its reports, meals, badges, streak, cycles and tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("profile id", args[0])
		if err != nil {
			return err
		}
		if !profileDeleteYes {
			return fmt.Errorf("refusing to delete profile %d without --yes", id)
		}
		return withServices(cmd, func(_ *config.Config, _ *gorm.DB, s *app.Services, _ *zap.Logger) error {
			if err := s.Profiles.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %d\n", id)
			return nil
		})
	},
}

func init() {
	profileDeleteCmd.Flags().BoolVar(&profileDeleteYes, "yes", false, "Confirm deletion")
	profileCmd.AddCommand(profileShowCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}
