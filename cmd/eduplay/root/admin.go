package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/services"
	"github.com/vytor/eduplay/internal/ui"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

func newCourseCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage courses",
	}
	cmd.AddCommand(newCourseAddCmd(opts))
	return cmd
}

func newCourseAddCmd(opts *options) *cobra.Command {
	var in services.NewCourse

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a course to the catalog",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			in.Title = args[0]
			course, err := a.Catalog.AddCourse(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render("added"), ui.Key.Render(fmt.Sprintf("#%d", course.ID)), course.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Subject, "subject", "s", "", "Subject (default General)")
	cmd.Flags().IntVarP(&in.Grade, "grade", "g", 0, "Grade (default 9)")
	cmd.Flags().IntVarP(&in.Lessons, "lessons", "l", 0, "Lesson count (default 10)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Short description")
	return cmd
}

func newUserCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage learners",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a learner from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			removed, err := a.Catalog.RemoveUser(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render("removed"), ui.Key.Render(fmt.Sprintf("#%d", removed.ID)), removed.DisplayName())
			return nil
		},
	})
	return cmd
}

func newXPCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xp",
		Short: "Adjust learner xp",
	}
	cmd.AddCommand(newXPAwardCmd(opts), newXPSetCmd(opts))
	return cmd
}

func newXPAwardCmd(opts *options) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "award <id> <amount>",
		Short: "Add xp to a learner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			if strings.TrimSpace(reason) == "" {
				return errors.New("--reason cannot be empty")
			}
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			p, ok := a.Progression.AwardXP(ctx, id, amount, reason)
			if !ok {
				return apperrors.NewNotFoundError("user", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(fmt.Sprintf("+%d XP", amount)), p.DisplayName(),
				ui.Muted.Render(fmt.Sprintf("(now %d XP, level %d)", p.XP, p.Level)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "admin award", "Reason shown in the activity feed")
	return cmd
}

func newXPSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <xp>",
		Short: "Overwrite a learner's xp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			xp, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid xp %q", args[1])
			}
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := a.Progression.SetXP(ctx, id, xp)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render("set"), p.DisplayName(),
				ui.Muted.Render(fmt.Sprintf("(%d XP, level %d)", p.XP, p.Level)))
			return nil
		},
	}
}
