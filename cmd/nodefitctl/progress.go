package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nodefit/internal/app"
	"nodefit/internal/config"
)

var badgesCmd = &cobra.Command{
	Use:   "badges <profile-id>",
	Short: "Show the badge grid of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("profile id", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd, func(_ *config.Config, _ *gorm.DB, s *app.Services, _ *zap.Logger) error {
			if _, err := s.Profiles.GetByID(cmd.Context(), id); err != nil {
				return err
			}
			grid, err := s.Badges.Grid(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "BADGE\tNAME\tEARNED")
			for _, item := range grid {
				earned := "-"
				if item.EarnedAt != nil {
					earned = item.EarnedAt.Format("2006-01-02")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", item.Type, item.Name, earned)
			}
			return nil
		})
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak <profile-id>",
	Short: "Show the streak of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("profile id", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd, func(_ *config.Config, _ *gorm.DB, s *app.Services, _ *zap.Logger) error {
			streak, err := s.Streaks.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			last := "never"
			if streak.LastActive != nil {
				last = streak.LastActive.Format("2006-01-02")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current %d, longest %d, last active %s\n", streak.Current, streak.Longest, last)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(badgesCmd, streakCmd)
}
